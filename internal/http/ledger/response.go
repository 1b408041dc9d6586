package ledger

import (
	"github.com/jtmarsh/budgeteer/internal/ledger"
)

type summaryEntryResponse struct {
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
}

// summaryResponse keys match the original wire format: "expense" is
// singular even though the table is "expenses".
type summaryResponse struct {
	Income  []summaryEntryResponse `json:"income"`
	Expense []summaryEntryResponse `json:"expense"`
}

type detailRowResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
}

type detailsResponse struct {
	Details []detailRowResponse `json:"details"`
}

func toSummaryEntries(entries []ledger.SummaryEntry) []summaryEntryResponse {
	resp := make([]summaryEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = summaryEntryResponse{
			CategoryName: e.CategoryName,
			Total:        e.Total,
		}
	}

	return resp
}

func toDetailRows(entries []ledger.Entry) []detailRowResponse {
	resp := make([]detailRowResponse, len(entries))
	for i, e := range entries {
		resp[i] = detailRowResponse{
			ID:     e.ID,
			Amount: e.Amount,
			Name:   e.Name,
		}
	}

	return resp
}
