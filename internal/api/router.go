package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/taletique/tailor-portal/internal/api/handlers"
	"github.com/taletique/tailor-portal/internal/api/middleware"
	"github.com/taletique/tailor-portal/internal/auth"
	"github.com/taletique/tailor-portal/internal/config"
	"github.com/taletique/tailor-portal/internal/service"
)

func NewRouter(services *service.Services, sessions *auth.Sessions, provider auth.Provider, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.AppURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authMount := auth.NewHandler(provider, sessions, services.User, cfg)
	authHandler := handlers.NewAuthHandler(services.User)
	orderHandler := handlers.NewOrderHandler(services.Order, services.User)
	measurementHandler := handlers.NewMeasurementHandler(services.Measurement, services.User)
	adminHandler := handlers.NewAdminHandler(services.Admin, services.User)
	contactHandler := handlers.NewContactHandler(services.Contact)

	r.Route("/api", func(r chi.Router) {
		// Identity-provider handshake (public)
		authMount.Register(r)

		// Public contact form
		r.Post("/contact", contactHandler.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessions, provider))

			r.Get("/auth/user", authHandler.GetAuthUser)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderHandler.List)
				r.Post("/", orderHandler.Create)
				r.Patch("/{id}", orderHandler.Update)
				r.Delete("/{id}", orderHandler.Delete)
			})

			r.Route("/measurements", func(r chi.Router) {
				r.Get("/", measurementHandler.Get)
				r.Post("/", measurementHandler.Save)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/customers", adminHandler.ListCustomers)
				r.Get("/stats", adminHandler.GetStats)
				r.Get("/contacts", adminHandler.ListContacts)
			})
		})
	})

	return r
}
