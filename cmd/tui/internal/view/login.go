package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
)

type LoginModel struct {
	CommonModel
	client *apiclient.Client

	form       *huh.Form
	email      string
	password   string
	submitting bool
	status     string
}

func NewLoginModel(client *apiclient.Client) LoginModel {
	m := LoginModel{client: client}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
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

func (m LoginModel) Title() string { return "Log In" }

func (m LoginModel) ShortHelp() string {
	return "Enter: log in | Ctrl+N: create account | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+n" {
			return m, func() tea.Msg { return SwitchToSignupMsg{} }
		}

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			// Single-kind failure surface: wrong password, unknown user
			// and network trouble all read the same here.
			m.status = "Invalid email or password."
			m.password = ""
			m.form = m.newForm()

			return m, m.form.Init()
		}

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

	return m, m.loginCmd()
}

func (m LoginModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Logging in...")
	}

	body := m.form.View()
	if m.status != "" {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1, 2).Render("Log In\n\n" + body)
}

type loginResultMsg struct {
	err error
}

func (m LoginModel) loginCmd() tea.Cmd {
	email, password := m.email, m.password

	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		return loginResultMsg{err: m.client.Login(ctx, email, password)}
	}
}
