package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jtmarsh/budgeteer/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	SummarizeTable(ctx context.Context, userID uuid.UUID, table Table, p period.Period) ([]SummaryEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, table Table, category string, p period.Period) ([]Entry, error)
	CreateEntry(ctx context.Context, table Table, entry *Entry) error
	UpdateEntry(ctx context.Context, table Table, entry Entry) error
	DeleteEntry(ctx context.Context, userID uuid.UUID, table Table, p period.Period, id int64) error
}

// Default categories shown on every dashboard, in display order, even
// when a period has no items for them yet.
var (
	defaultIncomeCategories  = []string{"income"}
	defaultExpenseCategories = []string{"bills", "groceries", "rent", "misc"}
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summarize aggregates both ledger tables for the period. Default
// categories lead the result (zero totals when absent); any remaining
// categories follow in store order.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, p period.Period) (*Summary, error) {
	income, err := s.repo.SummarizeTable(ctx, userID, TableIncome, p)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.SummarizeTable(ctx, userID, TableExpenses, p)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Income:   mergeDefaults(defaultIncomeCategories, income),
		Expenses: mergeDefaults(defaultExpenseCategories, expenses),
	}, nil
}

func mergeDefaults(defaults []string, entries []SummaryEntry) []SummaryEntry {
	byName := make(map[string]SummaryEntry, len(entries))
	for _, e := range entries {
		byName[e.CategoryName] = e
	}

	out := make([]SummaryEntry, 0, len(defaults)+len(entries))

	for _, name := range defaults {
		if e, ok := byName[name]; ok {
			out = append(out, e)
			continue
		}

		out = append(out, SummaryEntry{CategoryName: name, Total: 0})
	}

	isDefault := make(map[string]bool, len(defaults))
	for _, name := range defaults {
		isDefault[name] = true
	}

	for _, e := range entries {
		if !isDefault[e.CategoryName] {
			out = append(out, e)
		}
	}

	return out
}

func (s *Service) Details(ctx context.Context, userID uuid.UUID, table Table, category string, p period.Period) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID, table, category, p)
}

type CreateParams struct {
	CategoryName string
	Name         string
	Amount       float64
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, table Table, p period.Period, params CreateParams) (*Entry, error) {
	entry := &Entry{
		UserID:       userID,
		CategoryName: params.CategoryName,
		Name:         params.Name,
		Amount:       params.Amount,
		Month:        p.Month,
		Year:         p.Year,
	}
	if err := s.repo.CreateEntry(ctx, table, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, table Table, p period.Period, id int64, params CreateParams) error {
	return s.repo.UpdateEntry(ctx, table, Entry{
		ID:           id,
		UserID:       userID,
		CategoryName: params.CategoryName,
		Name:         params.Name,
		Amount:       params.Amount,
		Month:        p.Month,
		Year:         p.Year,
	})
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, table Table, p period.Period, id int64) error {
	return s.repo.DeleteEntry(ctx, userID, table, p, id)
}
