// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the wiring layer — the composition root where the dependency
// chain is assembled in one place:
//
//	sqlite.DB → service.Tracker → handler.TrackerHandler → routes
//
// main.go stays minimal: it builds a Config and calls New + Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/middleware"
	sqliteRepo "github.com/sakif/exercise-tracker/internal/repository/sqlite"
	"github.com/sakif/exercise-tracker/internal/service"
)

// requestTimeout bounds each API request. It replaces the old shared
// one-slot timer with a per-request context deadline, so concurrent
// requests can no longer cancel each other's timers.
const requestTimeout = 10 * time.Second

// Config holds server configuration.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string
}

// Server represents the HTTP server and all its dependencies. It owns the
// database connection and closes it on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, wires the service and handlers,
// and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// GET  /                        → landing page (HTML)
// GET  /static/*                → static files
// GET  /api/exercise/users      → list users (JSON)
// GET  /api/exercise/log        → exercise log with filters (JSON)
// POST /api/exercise/new-user   → create user (JSON)
// POST /api/exercise/add        → add exercise (JSON)
//
// Anything else is a plain-text 404 "not found".
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The API is open to browser clients from anywhere.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	// Unmatched paths and unsupported methods both render the historical
	// plain-text 404 body.
	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.NotFound)

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	homeHandler, err := handler.NewHomeHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating home handler: %w", err)
	}
	s.router.Get("/", homeHandler.HandleIndex)

	tracker := service.NewTracker(s.db.Users(), s.db.Exercises(), s.logger)
	trackerHandler := handler.NewTrackerHandler(tracker, s.logger)

	s.router.Route("/api/exercise", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))
		trackerHandler.RegisterRoutes(r)
	})

	return nil
}

// Start starts the HTTP server and blocks until shutdown. On SIGINT/SIGTERM
// it stops accepting connections, gives in-flight requests 30 seconds to
// finish, then closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
