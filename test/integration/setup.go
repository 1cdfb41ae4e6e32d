package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/events"
	"backoffice/internal/handler"
	"backoffice/internal/normalize"
	"backoffice/internal/repository"
	"backoffice/internal/router"
	"backoffice/internal/selection"
	"backoffice/internal/service"
	"backoffice/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the journal schema migrated.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(ctx, connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from the journal.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM order_status_changes"); err != nil {
		t.Logf("failed to clean journal: %v", err)
	}
}

// StoreAPI is an in-memory stand-in for the remote store API.
type StoreAPI struct {
	mu            sync.Mutex
	orders        map[string]map[string]any
	failStatus    bool
	expireSession bool
	statusCalls   int
	batchBodies   []map[string]any

	Server *httptest.Server
}

// NewStoreAPI starts a fake store API seeded with two orders.
func NewStoreAPI(t *testing.T) *StoreAPI {
	t.Helper()

	api := &StoreAPI{
		orders: map[string]map[string]any{
			"1": {"id": 1, "status": "enviado", "total": "10.5", "user": map[string]any{"name": "Ana", "email": "ana@example.com"},
				"items": []any{map[string]any{"name": "Café", "price": "5.25", "quantity": 2}}},
			"2": {"id": 2, "status": "pendiente por pagar", "total": "20"},
		},
	}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Server.Close)
	return api
}

// FailStatusUpdates makes every status PATCH answer 500.
func (a *StoreAPI) FailStatusUpdates(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failStatus = fail
}

// ExpireSession makes every authenticated call answer 401.
func (a *StoreAPI) ExpireSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expireSession = true
}

// StatusCalls returns how many status PATCHes reached the API.
func (a *StoreAPI) StatusCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusCalls
}

// BatchBodies returns the bodies of every batch assignment call.
func (a *StoreAPI) BatchBodies() []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]map[string]any(nil), a.batchBodies...)
}

func (a *StoreAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if path == "/auth/login" && r.Method == http.MethodPost {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s3cr3t", Path: "/"})
		reply(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 9, "email": "admin@example.com", "role": "admin"}})
		return
	}

	if c, err := r.Cookie("sid"); err != nil || c.Value != "s3cr3t" || a.expireSession {
		reply(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	switch {
	case path == "/auth/me":
		reply(w, http.StatusOK, map[string]any{"id": 9, "email": "admin@example.com"})

	case path == "/logout":
		reply(w, http.StatusOK, map[string]any{"success": true})

	case path == "/orders" && r.Method == http.MethodGet:
		list := make([]any, 0, len(a.orders))
		for _, id := range []string{"1", "2"} {
			if o, ok := a.orders[id]; ok {
				list = append(list, o)
			}
		}
		reply(w, http.StatusOK, map[string]any{"data": list})

	case len(parts) == 2 && parts[0] == "orders" && r.Method == http.MethodGet:
		o, ok := a.orders[parts[1]]
		if !ok {
			reply(w, http.StatusNotFound, map[string]any{"message": "not found"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"order": o})

	case len(parts) == 3 && parts[0] == "orders" && parts[2] == "status" && r.Method == http.MethodPatch:
		a.statusCalls++
		if a.failStatus {
			reply(w, http.StatusInternalServerError, map[string]any{"message": "database unavailable"})
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if o, ok := a.orders[parts[1]]; ok {
			o["status"] = body.Status
		}
		reply(w, http.StatusOK, map[string]any{"success": true})

	case len(parts) == 3 && parts[0] == "taxes" && parts[2] == "products" && r.Method == http.MethodPut:
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		a.batchBodies = append(a.batchBodies, body)
		reply(w, http.StatusOK, map[string]any{"success": true})

	case path == "/dashboard/stats":
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{"totalSales": "30.5", "totalOrders": 2}})

	case path == "/system/health":
		reply(w, http.StatusOK, map[string]any{"status": "ok", "database": "up", "uptime": "1h"})

	case path == "/system/metrics":
		reply(w, http.StatusOK, map[string]any{"cpu": 5, "memory": 40, "requestsPerMinute": 12})

	default:
		reply(w, http.StatusNotFound, map[string]any{"message": fmt.Sprintf("no route %s %s", r.Method, path)})
	}
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Stack is the console server wired against a fake store API.
type Stack struct {
	Handler  http.Handler
	Sessions *session.Store
}

// NewStack wires the full console over api. A nil journal disables journaling.
func NewStack(t *testing.T, api *StoreAPI, journal repository.StatusChangeRepository) *Stack {
	t.Helper()

	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	client, err := apiclient.New(apiclient.Options{BaseURL: api.Server.URL + "/api", Timeout: 5 * time.Second}, logger)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	sessions := session.NewStore(client, logger)
	sessions.OnExpired(client.ResetSession)
	client.OnUnauthorized(func() { sessions.Expire() })

	if journal == nil {
		journal = repository.NewNopStatusChangeRepository()
	}

	normalizer := normalize.NewNormalizer(logger)
	policy := service.NewTransitionPolicy(config.TransitionPermissive)
	orders := service.NewOrderService(client, normalizer, service.NewOrderBoard(), policy, journal, events.NewNopPublisher(), logger)
	taxes := service.NewTaxService(client, selection.NewFileLoader(t.TempDir(), logger), logger)

	h := router.New(router.Handlers{
		Session:   handler.NewSessionHandler(sessions, logger),
		Order:     handler.NewOrderHandler(orders, logger),
		Product:   handler.NewProductHandler(service.NewProductService(client, logger), taxes, logger),
		Tax:       handler.NewTaxHandler(taxes, logger),
		User:      handler.NewUserHandler(service.NewUserService(client, logger), logger),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(ctx, client, normalizer, 10*time.Millisecond, logger), logger),
	}, sessions, testAPIKey, logger)

	return &Stack{Handler: h, Sessions: sessions}
}
