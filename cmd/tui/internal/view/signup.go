package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
)

type SignupModel struct {
	CommonModel
	client *apiclient.Client

	form       *huh.Form
	email      string
	password   string
	submitting bool
	status     string
}

func NewSignupModel(client *apiclient.Client) SignupModel {
	m := SignupModel{client: client}
	m.form = m.newForm()

	return m
}

func (m SignupModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m SignupModel) Title() string { return "Create Account" }

func (m SignupModel) ShortHelp() string {
	return "Enter: create account | Esc: cancel | Ctrl+C: quit"
}

func (m SignupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return SignupCancelledMsg{} }
		}

	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = "Could not create the account. The email may already be taken."
			m.password = ""
			m.form = m.newForm()

			return m, m.form.Init()
		}

		// Account creation logs the new user in; the cookie is already set.
		return m, func() tea.Msg { return AuthenticatedMsg{} }
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.email = m.form.GetString("email")
	m.password = m.form.GetString("password")
	m.submitting = true
	m.status = ""

	return m, m.signupCmd()
}

func (m SignupModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Creating account...")
	}

	body := m.form.View()
	if m.status != "" {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1, 2).Render("Create Account\n\n" + body)
}

type signupResultMsg struct {
	err error
}

func (m SignupModel) signupCmd() tea.Cmd {
	email, password := m.email, m.password

	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		return signupResultMsg{err: m.client.CreateAccount(ctx, email, password)}
	}
}
