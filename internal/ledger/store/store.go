package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

// Store persists ledger entries. The income and expenses tables share one
// shape, so every query takes the table name from the validated
// ledger.Table value.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SummarizeTable(ctx context.Context, userID uuid.UUID, table ledger.Table, p period.Period) ([]ledger.SummaryEntry, error) {
	query := fmt.Sprintf(`
		SELECT category_name, SUM(amount)
		FROM %s
		WHERE user_id = $1 AND month = $2 AND year = $3
		GROUP BY category_name
		ORDER BY category_name ASC
	`, table)

	rows, err := s.db.QueryContext(ctx, query, userID, p.Month, p.Year)
	if err != nil {
		return nil, fmt.Errorf("summarizing %s: %w", table, err)
	}
	defer rows.Close()

	var entries []ledger.SummaryEntry

	for rows.Next() {
		var e ledger.SummaryEntry
		if err := rows.Scan(&e.CategoryName, &e.Total); err != nil {
			return nil, fmt.Errorf("scanning summary entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summary rows: %w", err)
	}

	return entries, nil
}

func (s *Store) ListEntries(ctx context.Context, userID uuid.UUID, table ledger.Table, category string, p period.Period) ([]ledger.Entry, error) {
	query := fmt.Sprintf(`
		SELECT id, name, amount
		FROM %s
		WHERE user_id = $1 AND category_name = $2 AND month = $3 AND year = $4
		ORDER BY id ASC
	`, table)

	rows, err := s.db.QueryContext(ctx, query, userID, category, p.Month, p.Year)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry

	for rows.Next() {
		e := ledger.Entry{
			UserID:       userID,
			CategoryName: category,
			Month:        p.Month,
			Year:         p.Year,
		}
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

func (s *Store) CreateEntry(ctx context.Context, table ledger.Table, entry *ledger.Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, category_name, name, amount, month, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, table)

	err := s.db.QueryRowContext(ctx, query,
		entry.UserID,
		entry.CategoryName,
		entry.Name,
		entry.Amount,
		entry.Month,
		entry.Year,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (s *Store) UpdateEntry(ctx context.Context, table ledger.Table, entry ledger.Entry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, amount = $2
		WHERE id = $3 AND user_id = $4 AND month = $5 AND year = $6
	`, table)

	res, err := s.db.ExecContext(ctx, query,
		entry.Name,
		entry.Amount,
		entry.ID,
		entry.UserID,
		entry.Month,
		entry.Year,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, userID uuid.UUID, table ledger.Table, p period.Period, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2 AND month = $3 AND year = $4
	`, table)

	res, err := s.db.ExecContext(ctx, query, id, userID, p.Month, p.Year)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
