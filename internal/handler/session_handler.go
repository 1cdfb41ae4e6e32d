package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/model"
	"backoffice/internal/session"

	"github.com/rs/zerolog"
)

// SessionManager is the part of the session store the login routes drive.
type SessionManager interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Logout(ctx context.Context) error
}

// SessionHandler serves the login, logout and session-state routes.
type SessionHandler struct {
	store  SessionManager
	logger zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store SessionManager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		store:  store,
		logger: logger.With().Str("handler", "session").Logger(),
	}
}

type loginPage struct {
	State  session.State `json:"state"`
	Fields []string      `json:"fields"`
	Action string        `json:"action"`
}

// LoginPage handles GET /login.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, loginPage{
		State:  h.store.Snapshot().State,
		Fields: []string{"email", "password"},
		Action: "POST /login",
	})
}

// Login handles POST /login. Both JSON and form bodies are accepted.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid form body", h.logger)
			return
		}
		creds.Email = r.PostForm.Get("email")
		creds.Password = r.PostForm.Get("password")
	} else if err := decodeJSON(w, r, &creds); err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	if _, err := h.store.Login(r.Context(), creds); err != nil {
		if errors.Is(err, model.ErrNotAuthenticated) {
			writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{
				Error:   model.ErrCodeUnauthorised,
				Message: "Credenciales inválidas",
			})
			return
		}
		writeFailure(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Logout handles POST /logout. The local session is always cleared.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("store API logout failed, local session cleared")
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Session handles GET /api/session.
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}
