package router

import (
	"net/http"

	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the console handlers the router mounts.
type Handlers struct {
	Session   *handler.SessionHandler
	Order     *handler.OrderHandler
	Product   *handler.ProductHandler
	Tax       *handler.TaxHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, sessions middleware.SessionReader, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> RealIP -> Logging -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Get("/login", h.Session.LoginPage)
	r.Post("/login", h.Session.Login)
	r.Post("/logout", h.Session.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", h.Session.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions, logger))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Post("/", h.Order.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Order.Get)
					r.Put("/", h.Order.Update)
					r.Delete("/", h.Order.Delete)
					r.Get("/transitions", h.Order.Transitions)
					r.Patch("/status", h.Order.UpdateStatus)
					r.Get("/history", h.Order.History)
					r.Post("/payment", h.Order.Payment)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Product.List)
				r.Post("/", h.Product.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Product.Get)
					r.Put("/", h.Product.Update)
					r.Delete("/", h.Product.Delete)
					r.Post("/images", h.Product.UploadImages)
					r.Put("/taxes/{taxId}", h.Product.AssignTax)
				})
			})

			r.Route("/taxes", func(r chi.Router) {
				r.Get("/", h.Tax.List)
				r.Post("/", h.Tax.Create)
				r.Put("/{id}", h.Tax.Update)
				r.Delete("/{id}", h.Tax.Delete)
				r.Post("/{id}/batch", h.Tax.Batch)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Get("/dashboard", h.Dashboard.Get)
			r.Get("/dashboard/telemetry", h.Dashboard.Telemetry)
		})
	})

	return r
}
