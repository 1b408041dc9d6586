package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jtmarsh/budgeteer/cmd/tui/internal/view"
	"github.com/jtmarsh/budgeteer/internal/apiclient"
	"github.com/jtmarsh/budgeteer/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := apiclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		slog.Error("failed to create api client", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(view.NewApp(client, cfg.VerifyInterval))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
