package roster

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// PairingRule co-assigns two people to complementary areas whenever both
// are available on the same date.
type PairingRule struct {
	PersonA   string `yaml:"person_a" json:"person_a"`
	PersonB   string `yaml:"person_b" json:"person_b"`
	AffinityA []Area `yaml:"affinity_a" json:"affinity_a"`
	AffinityB []Area `yaml:"affinity_b" json:"affinity_b"`
}

// IdentityRule maps known emails, phones or name keywords of a legacy
// respondent to one canonical name.
type IdentityRule struct {
	CanonicalName string   `yaml:"canonical_name" json:"canonical_name"`
	Emails        []string `yaml:"emails" json:"emails"`
	Phones        []string `yaml:"phones" json:"phones"`
	Keywords      []string `yaml:"keywords" json:"keywords"`
}

// Rules holds the special cases applied on top of the generic algorithm
type Rules struct {
	Pairings   []PairingRule  `yaml:"pairings" json:"pairings"`
	Identities []IdentityRule `yaml:"identities" json:"identities"`
}

// LoadRules reads a YAML rules file. An empty path or a missing file
// yields empty rules.
func LoadRules(path string) (*Rules, error) {
	rules := &Rules{}
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules, nil
		}
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Normalize(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Normalize checks that every pairing names both people and rewrites area
// aliases to their canonical tags.
func (r *Rules) Normalize() error {
	for i := range r.Pairings {
		p := &r.Pairings[i]
		if p.PersonA == "" || p.PersonB == "" {
			return fmt.Errorf("pairing %d: both people are required", i)
		}
		if len(p.AffinityA) == 0 || len(p.AffinityB) == 0 {
			return fmt.Errorf("pairing %d: affinities are required", i)
		}
		for _, list := range [][]Area{p.AffinityA, p.AffinityB} {
			for j, a := range list {
				parsed, err := ParseArea(string(a))
				if err != nil {
					return fmt.Errorf("pairing %d: %w", i, err)
				}
				list[j] = parsed
			}
		}
	}
	for i, id := range r.Identities {
		if id.CanonicalName == "" {
			return fmt.Errorf("identity %d: canonical_name is required", i)
		}
	}
	return nil
}

// LoadDirectory reads a team directory file, YAML or JSON, shaped like
// {"directory": [{"name": ..., "email": ..., "roles": [...]}]}. Role
// aliases are rewritten to their canonical tags.
func LoadDirectory(path string) ([]DirectoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	var doc struct {
		Directory []DirectoryEntry `yaml:"directory"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	for i, e := range doc.Directory {
		for j, role := range e.Roles {
			a, err := ParseArea(string(role))
			if err != nil {
				return nil, fmt.Errorf("directory %s: %w", e.Name, err)
			}
			doc.Directory[i].Roles[j] = a
		}
	}
	return doc.Directory, nil
}
