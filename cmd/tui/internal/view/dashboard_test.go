package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

func summaryFor(p period.Period) summaryMsg {
	return summaryMsg{
		period: p,
		summary: &ledger.Summary{
			Income:   []ledger.SummaryEntry{{CategoryName: "income", Total: 2500}},
			Expenses: []ledger.SummaryEntry{{CategoryName: "rent", Total: 1200}},
		},
	}
}

func TestDashboard_AppliesSummaryForSelectedPeriod(t *testing.T) {
	d := NewDashboardModel(testClient(t))
	d.period = period.Period{Month: 3, Year: 2026}

	next, _ := d.Update(summaryFor(d.period))
	d = next.(DashboardModel)

	require.NotNil(t, d.summary)
	assert.False(t, d.loading)
	assert.Len(t, d.lines(), 2)
}

func TestDashboard_DropsStalePeriodSummary(t *testing.T) {
	d := NewDashboardModel(testClient(t))
	d.period = period.Period{Month: 3, Year: 2026}

	// A response for the previously selected month arrives late.
	next, _ := d.Update(summaryFor(period.Period{Month: 2, Year: 2026}))
	d = next.(DashboardModel)

	assert.Nil(t, d.summary)
	assert.True(t, d.loading)
}

func TestDashboard_PeriodChangeClosesPopupAndRefetches(t *testing.T) {
	d := NewDashboardModel(testClient(t))
	d.period = period.Period{Month: 3, Year: 2026}

	next, _ := d.Update(summaryFor(d.period))
	d = next.(DashboardModel)

	next, _ = d.openPopup()
	d = next.(DashboardModel)
	require.NotNil(t, d.popup)

	next, cmd := d.setPeriod(d.period.Next())
	d = next.(DashboardModel)

	assert.Nil(t, d.popup)
	assert.True(t, d.loading)
	assert.NotNil(t, cmd)
	assert.Equal(t, period.Period{Month: 4, Year: 2026}, d.period)
}

func TestDashboard_DropsResultsForClosedPopup(t *testing.T) {
	d := NewDashboardModel(testClient(t))
	d.period = period.Period{Month: 3, Year: 2026}

	next, _ := d.Update(summaryFor(d.period))
	d = next.(DashboardModel)

	next, _ = d.openPopup()
	d = next.(DashboardModel)
	require.Equal(t, uint64(1), d.popupGen)

	// Load result for the popup arrives after it was closed.
	next, _ = d.closePopup()
	d = next.(DashboardModel)

	next, cmd := d.Update(editorItemsMsg{gen: 1, items: []apiclient.Item{{ID: 7, Name: "Coffee", Amount: 5}}})
	d = next.(DashboardModel)

	assert.Nil(t, d.popup)
	assert.Nil(t, cmd)
}

func TestDashboard_DropsResultsForReplacedPopup(t *testing.T) {
	d := NewDashboardModel(testClient(t))
	d.period = period.Period{Month: 3, Year: 2026}

	next, _ := d.Update(summaryFor(d.period))
	d = next.(DashboardModel)

	next, _ = d.openPopup()
	d = next.(DashboardModel)

	next, _ = d.closePopup()
	d = next.(DashboardModel)

	next, _ = d.Update(summaryFor(d.period))
	d = next.(DashboardModel)

	next, _ = d.openPopup()
	d = next.(DashboardModel)
	require.Equal(t, uint64(2), d.popupGen)

	// A result from the first popup generation must not touch the second.
	next, _ = d.Update(editorItemsMsg{gen: 1, items: []apiclient.Item{{ID: 7, Name: "Coffee", Amount: 5}}})
	d = next.(DashboardModel)

	assert.True(t, d.popup.loading)
	assert.Equal(t, 1, d.popup.rows.Len())
}

func TestDashboard_RowChangeTriggersSummaryRefetch(t *testing.T) {
	d := NewDashboardModel(testClient(t))

	_, cmd := d.Update(RowsChangedMsg{})
	assert.NotNil(t, cmd)
}

func TestEditor_LoadPlacesCursorOnDraft(t *testing.T) {
	e := NewEditorModel(testClient(t), ledger.TableExpenses, "groceries", period.Period{Month: 3, Year: 2026}, 1)

	next, _ := e.Update(editorItemsMsg{gen: 1, items: []apiclient.Item{
		{ID: 7, Name: "Coffee", Amount: 5},
		{ID: 9, Name: "Bread", Amount: 2.5},
	}})
	e = next.(EditorModel)

	assert.False(t, e.loading)
	require.Equal(t, 3, e.rows.Len())
	assert.Equal(t, 2, e.cursor)
	assert.True(t, e.rows.At(e.cursor).Draft)
}

func TestEditor_CreateFollowsFreshDraft(t *testing.T) {
	e := NewEditorModel(testClient(t), ledger.TableExpenses, "groceries", period.Period{Month: 3, Year: 2026}, 1)

	next, _ := e.Update(editorItemsMsg{gen: 1})
	e = next.(EditorModel)
	require.Equal(t, 1, e.rows.Len())

	e.rows.SetName(0, "Coffee")
	e.rows.SetAmount(0, "5")
	tok, _, ok := e.rows.BeginSave(0)
	require.True(t, ok)

	next, cmd := e.Update(editorCreateMsg{gen: 1, tok: tok, id: 42})
	e = next.(EditorModel)

	require.Equal(t, 2, e.rows.Len())
	assert.Equal(t, int64(42), e.rows.At(0).ID)
	assert.Equal(t, 1, e.cursor)
	assert.True(t, e.rows.At(1).Draft)
	assert.NotNil(t, cmd)
}
