package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jtmarsh/budgeteer/internal/auth"
	authHandler "github.com/jtmarsh/budgeteer/internal/http/auth"
	ledgerHandler "github.com/jtmarsh/budgeteer/internal/http/ledger"
)

func New(
	sessions *auth.Manager,
	authV1 *authHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	corsOrigin string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	authV1.Routes(router)

	router.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		authV1.ProtectedRoutes(r)
		ledgerV1.Routes(r)
	})

	return router
}
