// Package server exposes the graph pipeline over HTTP: graph and module
// endpoints per repository, per-file analysis, rendered READMEs, and a
// WebSocket stream for build progress.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/repograph/repograph/internal/analyze"
	"github.com/repograph/repograph/internal/enrich"
	"github.com/repograph/repograph/internal/githost"
	"github.com/repograph/repograph/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	CacheTTL time.Duration
	Enrich   enrich.Options
}

// Server serves repository graphs over HTTP.
type Server struct {
	cfg        Config
	gh         *githost.Client
	cache      *store.Store
	analyzer   *analyze.AIAnalyzer
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server. cache and analyzer may be nil, disabling snapshot
// reuse and AI analysis respectively.
func New(cfg Config, gh *githost.Client, cache *store.Store, analyzer *analyze.AIAnalyzer) *Server {
	s := &Server{
		cfg:      cfg,
		gh:       gh,
		cache:    cache,
		analyzer: analyzer,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/repos/{owner}/{repo}", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/graph/ws", s.handleGraphWS)
		r.Get("/modules", s.handleModules)
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/readme", s.handleReadme)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port and blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("repograph server listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
