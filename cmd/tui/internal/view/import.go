package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
	"github.com/jtmarsh/budgeteer/internal/importer"
	"github.com/jtmarsh/budgeteer/internal/period"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateFailed
)

// ImportDoneMsg closes the import view. created is how many items were
// sent to the API.
type ImportDoneMsg struct {
	created int
}

// ImportModel loads a CSV of line items into the current period.
type ImportModel struct {
	CommonModel
	client *apiclient.Client
	parser importer.Parser
	period period.Period

	state      importState
	filePicker filepicker.Model
	created    int
	status     string
}

func NewImportModel(client *apiclient.Client, p period.Period) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		client:     client,
		parser:     importer.NewCSVParser(),
		period:     p,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Items" }

func (m ImportModel) ShortHelp() string {
	return "Enter: select file | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			created := m.created
			return m, func() tea.Msg { return ImportDoneMsg{created: created} }
		}

	case importResultMsg:
		m.created = msg.created
		if msg.err != nil {
			m.state = importStateFailed
			m.status = fmt.Sprintf("Import failed: %v", msg.err)

			return m, nil
		}

		created := msg.created

		return m, func() tea.Msg { return ImportDoneMsg{created: created} }
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateFailed:
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select a CSV to import into %s:\n\n%s", m.period, m.filePicker.View()),
	)
}

// Messages

type importResultMsg struct {
	created int
	err     error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := apiCtx()
		defer cancel()

		created := 0

		for _, row := range rows {
			if _, err := m.client.CreateItem(ctx, row.Table, row.CategoryName, m.period, row.Name, row.Amount); err != nil {
				return importResultMsg{created: created, err: err}
			}

			created++
		}

		return importResultMsg{created: created}
	}
}
