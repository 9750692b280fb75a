package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when a sheet has no header row
var ErrNoHeader = errors.New("missing header row")

// NormalizeHeader trims, collapses whitespace and upper-cases a field name
func NormalizeHeader(header string) string {
	return strings.ToUpper(strings.Join(strings.Fields(header), " "))
}

// NormalizeRow rewrites the keys of a raw record with NormalizeHeader.
// Later duplicates of the same normalized key are dropped.
func NormalizeRow(raw map[string]string) roster.Row {
	row := make(roster.Row, len(raw))
	for k, v := range raw {
		key := NormalizeHeader(k)
		if key == "" {
			continue
		}
		if _, ok := row[key]; ok {
			continue
		}
		row[key] = strings.TrimSpace(v)
	}
	return row
}

// Read parses a CSV or XLSX upload, picked by file extension, into rows
func Read(filename string, r io.Reader) ([]roster.Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadCSV parses a CSV stream whose first record is the header
func ReadCSV(r io.Reader) ([]roster.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX parses the first worksheet of a workbook
func ReadXLSX(r io.Reader) ([]roster.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	records, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) ([]roster.Row, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = NormalizeHeader(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]roster.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if blank(record) {
			continue
		}
		row := make(roster.Row, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if _, ok := row[key]; ok {
				continue
			}
			row[key] = cellValue(record, i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
