package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jtmarsh/budgeteer/internal/auth"
	"github.com/jtmarsh/budgeteer/internal/config"
	"github.com/jtmarsh/budgeteer/internal/database"
	budgeteerHttp "github.com/jtmarsh/budgeteer/internal/http"
	authHandler "github.com/jtmarsh/budgeteer/internal/http/auth"
	ledgerHandler "github.com/jtmarsh/budgeteer/internal/http/ledger"
	"github.com/jtmarsh/budgeteer/internal/ledger"
	ledgerStore "github.com/jtmarsh/budgeteer/internal/ledger/store"
	"github.com/jtmarsh/budgeteer/internal/user"
	userStore "github.com/jtmarsh/budgeteer/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		sessions      = auth.NewManager([]byte(cfg.Auth.JWTKey), cfg.Auth.SessionTTL)
		userService   = user.NewService(userStore.New(db))
		ledgerService = ledger.NewService(ledgerStore.New(db))
	)

	var (
		authH   = authHandler.NewHandler(userService, sessions)
		ledgerH = ledgerHandler.NewHandler(ledgerService)
	)

	router := budgeteerHttp.New(sessions, authH, ledgerH, cfg.Server.CORSOrigin)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
