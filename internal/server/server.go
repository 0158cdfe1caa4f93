// Package server exposes the translator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sqlc-dev/caseprose/internal/config"
	"github.com/sqlc-dev/caseprose/internal/render"
	"github.com/sqlc-dev/caseprose/internal/store"
)

// Cache is the subset of *cache.Cache the server uses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Archive is the subset of *store.Store the server uses.
type Archive interface {
	Save(ctx context.Context, t *store.Translation) error
	Get(ctx context.Context, id uuid.UUID) (*store.Translation, error)
	Recent(ctx context.Context, limit int) ([]store.Translation, error)
}

// Server handles translation requests. Cache and archive are optional.
type Server struct {
	server    config.ServerConfig
	translate config.TranslateConfig
	renderer  *render.Renderer
	cache     Cache
	archive   Archive
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables response caching.
func WithCache(c Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithArchive enables the translation archive.
func WithArchive(a Archive) Option {
	return func(s *Server) { s.archive = a }
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server from cfg.
func New(cfg *config.Config, renderer *render.Renderer, opts ...Option) *Server {
	s := &Server{
		server:    cfg.Server,
		translate: cfg.Translate,
		renderer:  renderer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/translate", s.handleTranslate)
		r.Get("/translations", s.handleRecent)
		r.Get("/translations/{id}", s.handleGetTranslation)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.server.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
