package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
)

type page int

const (
	pageLogin page = iota
	pageSignup
	pageDashboard
)

// AppModel is the page router. Three pages: login, account creation
// and the dashboard. A background task re-verifies the session cookie
// at a fixed interval; a verified result moves to the dashboard from
// any page, and a rejected one while on the dashboard drops back to
// login. The check is idempotent, so repeated results are harmless.
type AppModel struct {
	client         *apiclient.Client
	verifyInterval time.Duration

	page      page
	login     LoginModel
	signup    SignupModel
	dashboard DashboardModel
}

func NewApp(client *apiclient.Client, verifyInterval time.Duration) AppModel {
	return AppModel{
		client:         client,
		verifyInterval: verifyInterval,
		page:           pageLogin,
		login:          NewLoginModel(client),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.login.Init(), m.verifyCmd(), m.verifyTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case verifyTickMsg:
		return m, tea.Batch(m.verifyCmd(), m.verifyTick())

	case verifyResultMsg:
		return m.applyVerify(msg.ok)

	case AuthenticatedMsg:
		return m.showDashboard()

	case SwitchToSignupMsg:
		m.page = pageSignup
		m.signup = NewSignupModel(m.client)

		return m, m.signup.Init()

	case SignupCancelledMsg:
		// Account creation may have logged the user in before they
		// backed out; clear any session rather than keep a stray one.
		m = m.showLogin("")

		return m, tea.Batch(m.login.Init(), m.silentLogoutCmd())

	case LoggedOutMsg:
		m = m.showLogin("")
		return m, m.login.Init()
	}

	return m.updatePage(msg)
}

func (m AppModel) applyVerify(ok bool) (tea.Model, tea.Cmd) {
	if ok {
		if m.page == pageDashboard {
			return m, nil
		}

		return m.showDashboard()
	}

	if m.page == pageDashboard {
		m = m.showLogin("Session expired. Please log in again.")
		return m, m.login.Init()
	}

	return m, nil
}

func (m AppModel) showDashboard() (tea.Model, tea.Cmd) {
	m.page = pageDashboard
	m.dashboard = NewDashboardModel(m.client)

	return m, m.dashboard.Init()
}

func (m AppModel) showLogin(status string) AppModel {
	m.page = pageLogin
	m.login = NewLoginModel(m.client)
	m.login.status = status

	return m
}

func (m AppModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.page {
	case pageLogin:
		var newModel tea.Model
		newModel, cmd = m.login.Update(msg)
		m.login = newModel.(LoginModel)
	case pageSignup:
		var newModel tea.Model
		newModel, cmd = m.signup.Update(msg)
		m.signup = newModel.(SignupModel)
	case pageDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboard.Update(msg)
		m.dashboard = newModel.(DashboardModel)
	}

	return m, cmd
}

func (m AppModel) View() string {
	var body, help string

	switch m.page {
	case pageLogin:
		body, help = m.login.View(), m.login.ShortHelp()
	case pageSignup:
		body, help = m.signup.View(), m.signup.ShortHelp()
	case pageDashboard:
		body, help = m.dashboard.View(), m.dashboard.ShortHelp()
	}

	return body + "\n" + lipgloss.NewStyle().Faint(true).Padding(0, 2).Render(help)
}

// Messages

type verifyTickMsg struct{}

func (m AppModel) verifyTick() tea.Cmd {
	return tea.Tick(m.verifyInterval, func(time.Time) tea.Msg {
		return verifyTickMsg{}
	})
}

type verifyResultMsg struct {
	ok bool
}

func (m AppModel) verifyCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		return verifyResultMsg{ok: m.client.Verify(ctx) == nil}
	}
}

func (m AppModel) silentLogoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()

		// Best effort; there may not be a session at all.
		_ = m.client.Logout(ctx)

		return nil
	}
}
