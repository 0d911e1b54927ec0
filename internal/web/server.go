// Package web serves the browser UI and the JSON API in front of the
// analysis pipeline.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prasitlab/disaster-lens/internal/pipeline"
	"github.com/prasitlab/disaster-lens/internal/sourcecheck"
	"github.com/prasitlab/disaster-lens/internal/store"
)

//go:embed all:static
var staticFS embed.FS

// Analyzer runs the two extraction pipelines.
type Analyzer interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	ExtractGeo(ctx context.Context, narrative string) (*pipeline.GeoResult, error)
}

// Server serves the assistant web app and API.
type Server struct {
	Analyzer  Analyzer
	Store     *store.Store          // nil when history is disabled
	Inspector *sourcecheck.Inspector // nil when source inspection is disabled
	Logger    *slog.Logger
	Model     string
	Addr      string
}

// Router assembles the chi routes.
func (s *Server) Router() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/geo/extract", s.handleGeoExtract)
	r.Get("/api/analyses", s.handleListAnalyses)
	r.Get("/api/analyses/{id}", s.handleReadAnalysis)
	r.Get("/api/analyses/{id}/csv", s.handleAnalysisCSV)
	r.Post("/api/sources/inspect", s.handleInspectSources)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	r.Handle("/*", http.FileServer(http.FS(staticSub)))

	return r, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	handler, err := s.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Write timeout must cover two sequential generation round trips.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info("server starting", "addr", s.Addr)
	return srv.ListenAndServe()
}
