// Package importer parses CSV files of budget line items so a month of
// spending can be loaded in bulk instead of typed row by row.
//
// The expected layout is a header row naming the columns name, amount,
// category and type (any order, any case), followed by one item per
// line. Amounts accept both decimal points and decimal commas.
package importer

import (
	"io"

	"github.com/jtmarsh/budgeteer/internal/ledger"
)

// Row is one parsed line item, not yet persisted.
type Row struct {
	Table        ledger.Table
	CategoryName string
	Name         string
	Amount       float64
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
