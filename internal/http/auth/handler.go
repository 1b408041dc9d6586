package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jtmarsh/budgeteer/internal/auth"
	"github.com/jtmarsh/budgeteer/internal/user"
)

type Handler struct {
	users    *user.Service
	sessions *auth.Manager
}

func NewHandler(users *user.Service, sessions *auth.Manager) *Handler {
	return &Handler{users: users, sessions: sessions}
}

// Routes mounts the endpoints reachable without a session.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/make-account", h.makeAccount)
}

// ProtectedRoutes mounts the endpoints behind the session middleware.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Post("/logout", h.logout)
	r.Get("/verify", h.verify)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.startSession(w, u)
}

func (h *Handler) makeAccount(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			http.Error(w, "user already exists", http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.startSession(w, u)
}

// startSession issues a token for the user and attaches it as the
// session cookie, mirroring the login response for account creation.
func (h *Handler) startSession(w http.ResponseWriter, u *user.User) {
	token, err := h.sessions.Issue(u.ID)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.sessions.SetCookie(w, token)
	respond(w, map[string]string{"response": "logged in"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respond(w, map[string]string{"response": "logged out"})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	respond(w, map[string]string{"status": "logged in"})
}

func respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
