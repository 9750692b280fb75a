package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "NOME COMPLETO", NormalizeHeader("  Nome   completo "))
	assert.Equal(t, "ÁREA", NormalizeHeader("área"))
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestNormalizeRow(t *testing.T) {
	row := NormalizeRow(map[string]string{" nome ": " Ana Silva ", "05/06": "Sim", "": "x"})
	assert.Equal(t, roster.Row{"NOME": "Ana Silva", "05/06": "Sim"}, row)
}

func TestReadCSV(t *testing.T) {
	data := "\ufeffNome,Área, 05/06 ,12/06\nAna Silva,Filmagem,Sim,Não\n,,,\nBruno Costa,Produção,Sim\n"

	rows, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, roster.Row{"NOME": "Ana Silva", "ÁREA": "Filmagem", "05/06": "Sim", "12/06": "Não"}, rows[0])
	assert.Equal(t, "", rows[1]["12/06"])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Nome", "Área", "05/06"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Ana Silva", "Filmagem", "Sim"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Read("respostas.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, roster.Row{"NOME": "Ana Silva", "ÁREA": "Filmagem", "05/06": "Sim"}, rows[0])
}
