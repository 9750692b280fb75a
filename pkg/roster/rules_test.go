package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesYAML = `
pairings:
  - person_a: Pedro Alves
    person_b: Maria Lima
    affinity_a: [PRODUCAO, FILMAGEM]
    affinity_b: [FOTO/APOIO]
identities:
  - canonical_name: Pedro Alves
    emails: [pedrinho@example.com]
    phones: ["11988887777"]
    keywords: [PEDRINHO]
`

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules.Pairings, 1)
	assert.Equal(t, []Area{AreaProduction, AreaFilming}, rules.Pairings[0].AffinityA)
	assert.Equal(t, []Area{AreaPhotoSupport}, rules.Pairings[0].AffinityB)
	require.Len(t, rules.Identities, 1)
	assert.Equal(t, []string{"PEDRINHO"}, rules.Identities[0].Keywords)
}

func TestLoadRules_MissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, rules.Pairings)

	rules, err = LoadRules("")
	require.NoError(t, err)
	assert.Empty(t, rules.Identities)
}

func TestLoadRules_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	bad := "pairings:\n  - person_a: A\n    person_b: B\n    affinity_a: [SOM]\n    affinity_b: [FOTO]\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "unknown area")
}

func TestParseAreas(t *testing.T) {
	areas, err := ParseAreas([]string{"filmagem", "PRODUÇÃO", "lighting", "FILMAGEM", ""})
	require.NoError(t, err)
	assert.Equal(t, []Area{AreaFilming, AreaProduction, AreaLighting}, areas)

	_, err = ParseAreas([]string{"som"})
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "team.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
directory:
  - name: Ana Silva
    email: ana@example.com
    roles: [iluminacao, FILMING]
`), 0o600))
	entries, err := LoadDirectory(yamlPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ana@example.com", entries[0].Email)
	assert.Equal(t, []Area{AreaLighting, AreaFilming}, entries[0].Roles)

	jsonPath := filepath.Join(dir, "team.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"directory": [{"name": "Bruno Costa", "roles": ["PROJEÇÃO"]}]}`), 0o600))
	entries, err = LoadDirectory(jsonPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []Area{AreaProjection}, entries[0].Roles)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("directory:\n  - name: X\n    roles: [SOM]\n"), 0o600))
	_, err = LoadDirectory(badPath)
	assert.Error(t, err)

	_, err = LoadDirectory(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
