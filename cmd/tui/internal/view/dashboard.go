package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

// categoryLine is one selectable row of the dashboard summary.
type categoryLine struct {
	table ledger.Table
	name  string
	total float64
}

// DashboardModel shows the per-category totals for one period and
// opens the editor popup for the selected category. Summary responses
// are tagged with the period they were fetched for; anything that
// arrives for a period other than the selected one is dropped.
type DashboardModel struct {
	CommonModel
	client *apiclient.Client

	period  period.Period
	summary *ledger.Summary
	cursor  int

	popup    *EditorModel
	popupGen uint64

	importView *ImportModel

	loading bool
	status  string
}

func NewDashboardModel(client *apiclient.Client) DashboardModel {
	return DashboardModel{
		client:  client,
		period:  period.Current(),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch {
	case m.importView != nil:
		return m.importView.ShortHelp()
	case m.popup != nil:
		return m.popup.ShortHelp()
	}

	return "←/→: month | Enter: open category | i: import | Ctrl+L: log out | Ctrl+C: quit"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		if msg.period != m.period {
			// Stale response for a period no longer selected.
			return m, nil
		}

		m.loading = false
		if msg.err != nil {
			m.status = "Could not load the summary."
			return m, nil
		}

		m.summary = msg.summary
		m.status = ""
		m.clampCursor()

		return m, nil

	case RowsChangedMsg:
		return m, m.loadSummaryCmd()

	case ImportDoneMsg:
		m.importView = nil
		if msg.created > 0 {
			m.status = fmt.Sprintf("Imported %d items.", msg.created)
			return m, m.loadSummaryCmd()
		}

		return m, nil

	case logoutDoneMsg:
		// Locally the session ends either way.
		return m, func() tea.Msg { return LoggedOutMsg{} }

	case popupMsg:
		if m.popup == nil || msg.generation() != m.popupGen {
			// Result aimed at a popup that is gone.
			return m, nil
		}

		return m.updatePopup(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.importView != nil {
		return m.updateImport(msg)
	}

	if m.popup != nil {
		// Component-internal messages, cursor blink and the like.
		return m.updatePopup(msg)
	}

	return m, nil
}

func (m DashboardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.importView != nil {
		return m.updateImport(msg)
	}

	if m.popup != nil {
		if msg.Type == tea.KeyEsc {
			return m.closePopup()
		}

		return m.updatePopup(msg)
	}

	switch msg.String() {
	case "left":
		return m.setPeriod(m.period.Prev())
	case "right":
		return m.setPeriod(m.period.Next())
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil
	case "down":
		if m.cursor < len(m.lines())-1 {
			m.cursor++
		}

		return m, nil
	case "enter":
		return m.openPopup()
	case "i":
		iv := NewImportModel(m.client, m.period)
		m.importView = &iv

		return m, m.importView.Init()
	case "ctrl+l":
		return m, m.logoutCmd()
	}

	return m, nil
}

func (m DashboardModel) setPeriod(p period.Period) (tea.Model, tea.Cmd) {
	m.period = p
	m.loading = true

	// An open popup belongs to the old period.
	m.popup = nil

	return m, m.loadSummaryCmd()
}

func (m DashboardModel) openPopup() (tea.Model, tea.Cmd) {
	lines := m.lines()
	if m.cursor < 0 || m.cursor >= len(lines) {
		return m, nil
	}

	line := lines[m.cursor]

	m.popupGen++
	popup := NewEditorModel(m.client, line.table, line.name, m.period, m.popupGen)
	m.popup = &popup

	return m, popup.Init()
}

func (m DashboardModel) closePopup() (tea.Model, tea.Cmd) {
	m.popup = nil

	// Totals may have changed while the popup was open.
	return m, m.loadSummaryCmd()
}

func (m DashboardModel) updatePopup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.popup.Update(msg)
	if popup, ok := newModel.(EditorModel); ok {
		m.popup = &popup
	}

	return m, cmd
}

func (m DashboardModel) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.importView.Update(msg)
	if iv, ok := newModel.(ImportModel); ok {
		m.importView = &iv
	}

	return m, cmd
}

// lines flattens the summary into selectable rows, income first.
func (m DashboardModel) lines() []categoryLine {
	if m.summary == nil {
		return nil
	}

	var lines []categoryLine

	for _, e := range m.summary.Income {
		lines = append(lines, categoryLine{table: ledger.TableIncome, name: e.CategoryName, total: e.Total})
	}

	for _, e := range m.summary.Expenses {
		lines = append(lines, categoryLine{table: ledger.TableExpenses, name: e.CategoryName, total: e.Total})
	}

	return lines
}

func (m *DashboardModel) clampCursor() {
	if n := len(m.lines()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
}

func (m DashboardModel) View() string {
	if m.importView != nil {
		return m.importView.View()
	}

	content := m.summaryView()

	if m.popup != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.popup.View())
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) summaryView() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.period.String()) + "\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	lines := m.lines()

	section := ledger.Table("")
	for i, line := range lines {
		if line.table != section {
			section = line.table
			if i > 0 {
				b.WriteString("\n")
			}

			b.WriteString(sectionStyle.Render(sectionTitle(section)) + "\n")
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		b.WriteString(fmt.Sprintf("%s%-20s %12s\n", cursor, line.name, FormatMoney(line.total)))
	}

	return b.String()
}

func sectionTitle(t ledger.Table) string {
	if t == ledger.TableIncome {
		return "Income"
	}

	return "Expenses"
}

var sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

// Messages

type summaryMsg struct {
	period  period.Period
	summary *ledger.Summary
	err     error
}

func (m DashboardModel) loadSummaryCmd() tea.Cmd {
	p := m.period

	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		sum, err := m.client.Summary(ctx, p)

		return summaryMsg{period: p, summary: sum, err: err}
	}
}

type logoutDoneMsg struct {
	err error
}

func (m DashboardModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		return logoutDoneMsg{err: m.client.Logout(ctx)}
	}
}
