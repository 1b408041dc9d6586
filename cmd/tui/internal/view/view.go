package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

const apiTimeout = 10 * time.Second

// apiCtx returns a context with the standard timeout for API calls.
func apiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// AuthenticatedMsg is emitted when a login or account creation
// succeeds and the session cookie is set.
type AuthenticatedMsg struct{}

// SignupCancelledMsg is emitted when account creation is abandoned.
type SignupCancelledMsg struct{}

// SwitchToSignupMsg asks the router to show the account creation page.
type SwitchToSignupMsg struct{}

// LoggedOutMsg is emitted after the session has been ended server-side.
type LoggedOutMsg struct{}
