package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

type editorField int

const (
	fieldName editorField = iota
	fieldAmount
)

// popupMsg is implemented by every async result aimed at the editor
// popup. The generation lets the dashboard drop results that belong to
// a popup that has since been closed or replaced.
type popupMsg interface {
	generation() uint64
}

// RowsChangedMsg signals that the item set behind the summary changed
// and the totals need refetching.
type RowsChangedMsg struct{}

// EditorModel is the category popup: the item rows of one category in
// one period, editable in place. The last row is always a draft for
// entering the next item.
type EditorModel struct {
	CommonModel
	client *apiclient.Client

	table    ledger.Table
	category string
	period   period.Period
	gen      uint64

	rows        *RowList
	cursor      int
	field       editorField
	nameInput   textinput.Model
	amountInput textinput.Model

	loading bool
	status  string
}

func NewEditorModel(client *apiclient.Client, table ledger.Table, category string, p period.Period, gen uint64) EditorModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 80
	name.Width = 24

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16
	amount.Width = 10

	m := EditorModel{
		client:      client,
		table:       table,
		category:    category,
		period:      p,
		gen:         gen,
		rows:        NewRowList(nil),
		nameInput:   name,
		amountInput: amount,
		loading:     true,
	}
	m.focusField(fieldName)

	return m
}

func (m EditorModel) Title() string { return m.category }

func (m EditorModel) ShortHelp() string {
	return "Enter: save row | Tab: switch field | Ctrl+D: delete row | Esc: close"
}

func (m EditorModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Could not load items."
			return m, nil
		}

		m.rows = NewRowList(msg.items)
		m.cursor = m.rows.Len() - 1
		m.syncInputs()

		return m, nil

	case editorCreateMsg:
		if msg.err != nil {
			m.status = "Could not save the item."
			return m, nil
		}

		if !m.rows.ApplyCreate(msg.tok, msg.id) {
			return m, nil
		}

		if m.cursor == m.rows.Len()-2 {
			// The confirmed row was the draft under the cursor; follow
			// the fresh draft so typing can continue.
			m.cursor = m.rows.Len() - 1
			m.syncInputs()
		}

		m.status = ""

		return m, notifyRowsChanged

	case editorUpdateMsg:
		if msg.err != nil {
			m.status = "Could not save the item."
			return m, nil
		}

		m.status = ""

		// The row keeps its local values; only the totals move.
		return m, notifyRowsChanged

	case editorDeleteMsg:
		if msg.err != nil {
			m.status = "Could not delete the item."
			return m, nil
		}

		if !m.rows.Remove(msg.key) {
			return m, nil
		}

		if m.cursor >= m.rows.Len() {
			m.cursor = m.rows.Len() - 1
		}
		m.syncInputs()
		m.status = ""

		return m, notifyRowsChanged

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m EditorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
			m.syncInputs()
		}

		return m, nil

	case "down":
		if m.cursor < m.rows.Len()-1 {
			m.cursor++
			m.syncInputs()
		}

		return m, nil

	case "tab", "shift+tab":
		if m.field == fieldName {
			m.focusField(fieldAmount)
		} else {
			m.focusField(fieldName)
		}

		return m, nil

	case "enter":
		return m.saveRow()

	case "ctrl+d":
		return m.deleteRow()
	}

	var cmd tea.Cmd

	if m.field == fieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.rows.SetName(m.cursor, m.nameInput.Value())
	} else {
		m.amountInput, cmd = m.amountInput.Update(msg)
		m.rows.SetAmount(m.cursor, m.amountInput.Value())
	}

	return m, cmd
}

func (m EditorModel) saveRow() (tea.Model, tea.Cmd) {
	amount, err := m.rows.At(m.cursor).AmountValue()
	if err != nil {
		m.status = "Amount must be a number."
		return m, nil
	}

	if strings.TrimSpace(m.rows.At(m.cursor).Name) == "" {
		m.status = "Name must not be empty."
		return m, nil
	}

	tok, row, ok := m.rows.BeginSave(m.cursor)
	if !ok {
		return m, nil
	}

	m.status = ""

	if row.Draft {
		return m, m.createCmd(tok, row.Name, amount)
	}

	return m, m.updateCmd(row.ID, row.Name, amount)
}

func (m EditorModel) deleteRow() (tea.Model, tea.Cmd) {
	row := m.rows.At(m.cursor)
	if row.Draft {
		return m, nil
	}

	return m, m.deleteCmd(row.Key, row.ID)
}

func (m *EditorModel) focusField(f editorField) {
	m.field = f
	if f == fieldName {
		m.nameInput.Focus()
		m.amountInput.Blur()
	} else {
		m.amountInput.Focus()
		m.nameInput.Blur()
	}
}

// syncInputs loads the row under the cursor into the text inputs.
func (m *EditorModel) syncInputs() {
	row := m.rows.At(m.cursor)
	m.nameInput.SetValue(row.Name)
	m.amountInput.SetValue(row.Amount)
	m.nameInput.CursorEnd()
	m.amountInput.CursorEnd()
	m.focusField(fieldName)
}

func (m EditorModel) View() string {
	title := fmt.Sprintf("%s — %s", m.category, m.period)

	if m.loading {
		return popupStyle.Render(title + "\n\nLoading...")
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")

	for i, row := range m.rows.Rows() {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("> %s  %s", m.nameInput.View(), m.amountInput.View()))
		} else {
			name := row.Name
			if row.Draft && name == "" {
				name = lipgloss.NewStyle().Faint(true).Render("(new item)")
			}

			b.WriteString(fmt.Sprintf("  %-24s  %10s", name, row.Amount))
		}

		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status))
	}

	return popupStyle.Render(b.String())
}

var popupStyle = lipgloss.NewStyle().
	Padding(1, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

// Messages

type editorItemsMsg struct {
	gen   uint64
	items []apiclient.Item
	err   error
}

func (m editorItemsMsg) generation() uint64 { return m.gen }

type editorCreateMsg struct {
	gen uint64
	tok SaveToken
	id  int64
	err error
}

func (m editorCreateMsg) generation() uint64 { return m.gen }

type editorUpdateMsg struct {
	gen uint64
	err error
}

func (m editorUpdateMsg) generation() uint64 { return m.gen }

type editorDeleteMsg struct {
	gen uint64
	key uint64
	err error
}

func (m editorDeleteMsg) generation() uint64 { return m.gen }

func notifyRowsChanged() tea.Msg {
	return RowsChangedMsg{}
}

func (m EditorModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		items, err := m.client.Details(ctx, m.table, m.category, m.period)

		return editorItemsMsg{gen: m.gen, items: items, err: err}
	}
}

func (m EditorModel) createCmd(tok SaveToken, name string, amount float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		id, err := m.client.CreateItem(ctx, m.table, m.category, m.period, name, amount)

		return editorCreateMsg{gen: m.gen, tok: tok, id: id, err: err}
	}
}

func (m EditorModel) updateCmd(id int64, name string, amount float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		err := m.client.UpdateItem(ctx, m.table, m.category, m.period, apiclient.Item{
			ID:     id,
			Name:   name,
			Amount: amount,
		})

		return editorUpdateMsg{gen: m.gen, err: err}
	}
}

func (m EditorModel) deleteCmd(key uint64, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		err := m.client.DeleteItem(ctx, m.table, m.period, id)

		return editorDeleteMsg{gen: m.gen, key: key, err: err}
	}
}
