package ledger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jtmarsh/budgeteer/internal/auth"
	ledgerHandler "github.com/jtmarsh/budgeteer/internal/http/ledger"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

// authedRouter mounts the handler behind a stand-in for the session
// middleware that injects a fixed user ID.
func authedRouter(repo ledger.Repository, userID uuid.UUID) http.Handler {
	h := ledgerHandler.NewHandler(ledger.NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	h.Routes(r)

	return r
}

func TestGetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	p := period.Period{Month: 3, Year: 2026}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		SummarizeTable(gomock.Any(), userID, ledger.TableIncome, p).
		Return([]ledger.SummaryEntry{{CategoryName: "income", Total: 2500}}, nil)
	repo.EXPECT().
		SummarizeTable(gomock.Any(), userID, ledger.TableExpenses, p).
		Return(nil, nil)

	router := authedRouter(repo, userID)

	req := httptest.NewRequest(http.MethodGet, "/get-summary?month=3&year=2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Income []struct {
			CategoryName string  `json:"category_name"`
			Total        float64 `json:"total"`
		} `json:"income"`
		Expense []struct {
			CategoryName string  `json:"category_name"`
			Total        float64 `json:"total"`
		} `json:"expense"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	require.Len(t, body.Income, 1)
	assert.Equal(t, "income", body.Income[0].CategoryName)
	assert.Equal(t, 2500.0, body.Income[0].Total)

	// Default expense categories appear even with no data.
	require.Len(t, body.Expense, 4)
	assert.Equal(t, "bills", body.Expense[0].CategoryName)
	assert.Zero(t, body.Expense[0].Total)
}

func TestGetDetails(t *testing.T) {
	t.Run("InvalidTable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := authedRouter(ledger.NewMockRepository(ctrl), uuid.New())

		req := httptest.NewRequest(http.MethodGet, "/get-details?month=0&year=2026&table=users&category=x", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userID := uuid.New()
		p := period.Period{Month: 0, Year: 2026}

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			ListEntries(gomock.Any(), userID, ledger.TableExpenses, "groceries", p).
			Return([]ledger.Entry{
				{ID: 7, Name: "Coffee", Amount: 5},
				{ID: 9, Name: "Bread", Amount: 2.5},
			}, nil)

		router := authedRouter(repo, userID)

		req := httptest.NewRequest(http.MethodGet, "/get-details?month=0&year=2026&table=expenses&category=groceries", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Details []struct {
				ID     int64   `json:"id"`
				Amount float64 `json:"amount"`
				Name   string  `json:"name"`
			} `json:"details"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

		require.Len(t, body.Details, 2)
		assert.Equal(t, int64(7), body.Details[0].ID)
		assert.Equal(t, "Coffee", body.Details[0].Name)
	})
}

func TestCreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateEntry(gomock.Any(), ledger.TableExpenses, gomock.Any()).
		DoAndReturn(func(_ any, _ ledger.Table, e *ledger.Entry) error {
			assert.Equal(t, "groceries", e.CategoryName)
			assert.Equal(t, "Coffee", e.Name)
			assert.Equal(t, 5.0, e.Amount)
			assert.Equal(t, 7, e.Month)
			assert.Equal(t, 2026, e.Year)
			e.ID = 42
			return nil
		})

	router := authedRouter(repo, userID)

	body := `{"category_name":"groceries","amount":5,"name":"Coffee"}`
	req := httptest.NewRequest(http.MethodPost, "/items?month=7&year=2026&table=expenses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp["id"])
}

func TestUpdateItem_MissingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := authedRouter(ledger.NewMockRepository(ctrl), uuid.New())

	body := `{"category_name":"groceries","amount":5,"name":"Coffee"}`
	req := httptest.NewRequest(http.MethodPut, "/items?month=7&year=2026&table=expenses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	p := period.Period{Month: 7, Year: 2026}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteEntry(gomock.Any(), userID, ledger.TableIncome, p, int64(7)).
		Return(nil)

	router := authedRouter(repo, userID)

	req := httptest.NewRequest(http.MethodDelete, "/items?month=7&year=2026&table=income", strings.NewReader(`{"id":7}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "successfully deleted", resp["response"])
}
