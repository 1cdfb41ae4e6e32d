package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/handler"
	"backoffice/internal/model"
	"backoffice/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const testAPIKey = "test-api-key-123"

type fakeSessions struct {
	state session.State
}

func (f fakeSessions) Snapshot() session.Snapshot { return session.Snapshot{State: f.state} }

func (f fakeSessions) Actor() string { return "admin@example.com" }

func (f fakeSessions) Login(context.Context, model.Credentials) (model.User, error) {
	return model.User{}, nil
}

func (f fakeSessions) Logout(context.Context) error { return nil }

type fakeDashboard struct{}

func (fakeDashboard) Load(context.Context) (*model.Dashboard, error) { return &model.Dashboard{}, nil }

func (fakeDashboard) Telemetry() model.Telemetry {
	return model.Telemetry{Health: &model.UnknownHealth, Metrics: &model.SystemMetrics{}}
}

func newTestRouter(state session.State) http.Handler {
	logger := zerolog.Nop()
	sessions := fakeSessions{state: state}
	return New(Handlers{
		Session:   handler.NewSessionHandler(sessions, logger),
		Order:     handler.NewOrderHandler(nil, logger),
		Product:   handler.NewProductHandler(nil, nil, logger),
		Tax:       handler.NewTaxHandler(nil, logger),
		User:      handler.NewUserHandler(nil, logger),
		Dashboard: handler.NewDashboardHandler(fakeDashboard{}, logger),
	}, sessions, testAPIKey, logger)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		state          session.State
		method         string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{"Health without key", session.StateUnauthenticated, http.MethodGet, "/health", "", http.StatusOK},
		{"Login page without key", session.StateUnauthenticated, http.MethodGet, "/login", "", http.StatusOK},
		{"API without key", session.StateAuthenticated, http.MethodGet, "/api/dashboard", "", http.StatusUnauthorized},
		{"Session state while checking", session.StateChecking, http.MethodGet, "/api/session", testAPIKey, http.StatusOK},
		{"Protected route while checking", session.StateChecking, http.MethodGet, "/api/dashboard", testAPIKey, http.StatusServiceUnavailable},
		{"Protected route unauthenticated", session.StateUnauthenticated, http.MethodGet, "/api/orders", testAPIKey, http.StatusUnauthorized},
		{"Dashboard", session.StateAuthenticated, http.MethodGet, "/api/dashboard", testAPIKey, http.StatusOK},
		{"Dashboard telemetry", session.StateAuthenticated, http.MethodGet, "/api/dashboard/telemetry", testAPIKey, http.StatusOK},
		{"Unknown route", session.StateAuthenticated, http.MethodGet, "/api/nope", testAPIKey, http.StatusNotFound},
		{"Wrong method", session.StateAuthenticated, http.MethodPost, "/api/dashboard", testAPIKey, http.StatusMethodNotAllowed},
		{"Preflight", session.StateUnauthenticated, http.MethodOptions, "/api/orders", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.state)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	r := newTestRouter(session.StateUnauthenticated)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"correlationId"`)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
}
