package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/jtmarsh/budgeteer/internal/encoding"
	"github.com/jtmarsh/budgeteer/internal/ledger"
)

const (
	colName     = "name"
	colAmount   = "amount"
	colCategory = "category"
	colType     = "type"
)

// CSVParser reads item CSVs exported from spreadsheets. The header row
// is located by scanning for the known column names, so leading banner
// rows are tolerated.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(records)
	if cols == nil {
		return nil, fmt.Errorf("no header row with columns %q, %q, %q, %q", colName, colAmount, colCategory, colType)
	}

	var rows []Row

	for _, record := range records[headerIdx+1:] {
		row, ok := parseRecord(cols, record)
		if !ok {
			// Footers, blank lines, and malformed amounts are skipped
			// rather than failing the whole file.
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

type colIndex map[string]int

// findHeader scans for the first row containing all four column names.
func findHeader(records [][]string) (colIndex, int) {
	for idx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			cols[strings.ToLower(strings.TrimSpace(cell))] = i
		}

		if hasAll(cols, colName, colAmount, colCategory, colType) {
			return cols, idx
		}
	}

	return nil, 0
}

func hasAll(cols colIndex, names ...string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRecord(cols colIndex, record []string) (Row, bool) {
	name := cell(record, cols[colName])
	if name == "" {
		return Row{}, false
	}

	table, err := ledger.ParseTable(cell(record, cols[colType]))
	if err != nil {
		return Row{}, false
	}

	amount, err := parseAmount(cell(record, cols[colAmount]))
	if err != nil {
		return Row{}, false
	}

	return Row{
		Table:        table,
		CategoryName: cell(record, cols[colCategory]),
		Name:         name,
		Amount:       amount,
	}, true
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

// parseAmount accepts "12.50", "12,50" and "1.234,56". A comma present
// anywhere means European formatting: dots are thousands separators.
func parseAmount(s string) (float64, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}
