package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jtmarsh/budgeteer/internal/auth"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/get-summary", h.getSummary)
	r.Get("/get-details", h.getDetails)
	r.Post("/items", h.createItem)
	r.Put("/items", h.updateItem)
	r.Delete("/items", h.deleteItem)
}

// queryPeriod reads month/year query params, defaulting to the current
// period. Months are zero-indexed on the wire.
func queryPeriod(r *http.Request) period.Period {
	now := time.Now()
	p := period.Period{Month: int(now.Month()) - 1, Year: now.Year()}

	if s := r.URL.Query().Get("month"); s != "" {
		if m, err := strconv.Atoi(s); err == nil {
			p.Month = m
		}
	}

	if s := r.URL.Query().Get("year"); s != "" {
		if y, err := strconv.Atoi(s); err == nil {
			p.Year = y
		}
	}

	return p
}

func queryTable(r *http.Request) (ledger.Table, error) {
	return ledger.ParseTable(r.URL.Query().Get("table"))
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	sum, err := h.svc.Summarize(r.Context(), userID, queryPeriod(r))
	if err != nil {
		slog.Error("failed to summarize", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	respond(w, summaryResponse{
		Income:  toSummaryEntries(sum.Income),
		Expense: toSummaryEntries(sum.Expenses),
	})
}

func (h *Handler) getDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	table, err := queryTable(r)
	if err != nil {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}

	category := r.URL.Query().Get("category")

	entries, err := h.svc.Details(r.Context(), userID, table, category, queryPeriod(r))
	if err != nil {
		slog.Error("failed to list details", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	respond(w, detailsResponse{Details: toDetailRows(entries)})
}

type itemRequest struct {
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Name         string  `json:"name"`
	ID           *int64  `json:"id,omitempty"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	table, err := queryTable(r)
	if err != nil {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Create(r.Context(), userID, table, queryPeriod(r), ledger.CreateParams{
		CategoryName: req.CategoryName,
		Name:         req.Name,
		Amount:       req.Amount,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Error(w, "error creating entry", http.StatusInternalServerError)

		return
	}

	respond(w, map[string]int64{"id": entry.ID})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	table, err := queryTable(r)
	if err != nil {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ID == nil {
		http.Error(w, "missing item id", http.StatusBadRequest)
		return
	}

	err = h.svc.Update(r.Context(), userID, table, queryPeriod(r), *req.ID, ledger.CreateParams{
		CategoryName: req.CategoryName,
		Name:         req.Name,
		Amount:       req.Amount,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to update item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	respond(w, map[string]string{"response": "row updated"})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	table, err := queryTable(r)
	if err != nil {
		http.Error(w, "invalid selection", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ID == nil {
		http.Error(w, "missing item id", http.StatusBadRequest)
		return
	}

	err = h.svc.Delete(r.Context(), userID, table, queryPeriod(r), *req.ID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to delete item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	respond(w, map[string]string{"response": "successfully deleted"})
}

func respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
