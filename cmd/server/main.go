package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taletique/tailor-portal/internal/api"
	"github.com/taletique/tailor-portal/internal/auth"
	"github.com/taletique/tailor-portal/internal/config"
	"github.com/taletique/tailor-portal/internal/repository/postgres"
	"github.com/taletique/tailor-portal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Identity provider discovery happens up front; a bad issuer URL should
	// stop the process, not the first login.
	provider, err := auth.NewOIDCProvider(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to configure identity provider: %v", err)
	}

	sessions := auth.NewSessions(repos.Session, cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies())

	pruneCtx, stopPrune := context.WithCancel(context.Background())
	defer stopPrune()
	go sessions.PruneLoop(pruneCtx, time.Hour)

	// Initialize services
	services := service.NewServices(repos)

	// Initialize router
	router := api.NewRouter(services, sessions, provider, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
