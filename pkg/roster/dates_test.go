package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverDates_SortsChronologically(t *testing.T) {
	rows := []Row{
		{"NOME": "A", "15/2": "Sim", "03/03": "Sim"},
		{"NOME": "B", "3/1": "Sim"},
	}
	assert.Equal(t, []string{"3/1", "15/2", "03/03"}, DiscoverDates(rows))
}

func TestDiscoverDates_UnionsEveryRow(t *testing.T) {
	rows := []Row{
		{"NOME": "A"},
		{"NOME": "B", "DOMINGO 07.09": "Sim"},
	}
	assert.Equal(t, []string{"DOMINGO 07.09"}, DiscoverDates(rows))
}

func TestDiscoverDates_FallbackExcludesMetadata(t *testing.T) {
	rows := []Row{{
		"CARIMBO DE DATA/HORA": "x",
		"ENDEREÇO DE E-MAIL":   "a@b.c",
		"NOME COMPLETO":        "A",
		"ÁREA":                 "Filmagem",
		"ID":                   "1",
		"COMENTÁRIOS":          "",
		"CULTO DE PÁSCOA":      "Sim",
		"CULTO DE NATAL":       "Sim",
	}}
	assert.Equal(t, []string{"CULTO DE NATAL", "CULTO DE PÁSCOA"}, DiscoverDates(rows))
}

func TestParseDayMonth(t *testing.T) {
	day, month, ok := ParseDayMonth("SÁBADO 05/06")
	assert.True(t, ok)
	assert.Equal(t, 5, day)
	assert.Equal(t, 6, month)

	_, _, ok = ParseDayMonth("CULTO")
	assert.False(t, ok)
}

func TestParseDayMonth_IgnoresLongerDigitRuns(t *testing.T) {
	day, month, ok := ParseDayMonth("2025-06-05")
	assert.True(t, ok)
	assert.Equal(t, 6, day)
	assert.Equal(t, 5, month)

	_, _, ok = ParseDayMonth("123/4")
	assert.False(t, ok)

	_, _, ok = ParseDayMonth("TELEFONE 9999-8888")
	assert.False(t, ok)
}

func TestDiscoverDates_PhoneColumnIsNotADate(t *testing.T) {
	rows := []Row{{"NOME": "A", "TELEFONE 9999-8888": "x", "05/06": "Sim"}}
	assert.Equal(t, []string{"05/06"}, DiscoverDates(rows))
}
