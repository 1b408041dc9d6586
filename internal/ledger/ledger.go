package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Table selects which side of the ledger an item belongs to. The two
// values double as the backing table names, so anything interpolated
// into SQL must come through ParseTable.
type Table string

const (
	TableIncome   Table = "income"
	TableExpenses Table = "expenses"
)

func ParseTable(s string) (Table, error) {
	switch Table(s) {
	case TableIncome, TableExpenses:
		return Table(s), nil
	}

	return "", fmt.Errorf("invalid table %q", s)
}

var ErrNotFound = errors.New("entry not found")

// SummaryEntry is one category's aggregated total for a period.
type SummaryEntry struct {
	CategoryName string
	Total        float64
}

// Summary holds both sides of a period's ledger.
type Summary struct {
	Income   []SummaryEntry
	Expenses []SummaryEntry
}

// Entry is a single line item within one category of one period.
type Entry struct {
	ID           int64
	UserID       uuid.UUID
	CategoryName string
	Name         string
	Amount       float64
	Month        int
	Year         int
}
