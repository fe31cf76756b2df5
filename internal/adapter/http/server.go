// Package http exposes the dashboard API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/piggdekk-dashboard/internal/adapter/kommuneinfo"
	"github.com/couchcryptid/piggdekk-dashboard/internal/dataset"
	"github.com/couchcryptid/piggdekk-dashboard/internal/domain"
)

// DatasetProvider supplies the merged municipality dataset.
type DatasetProvider interface {
	Dataset() (*dataset.Dataset, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard over HTTP.
type Server struct {
	httpServer *http.Server
	provider   DatasetProvider
	registry   kommuneinfo.Source
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server. registry may be nil when
// the municipality registry is disabled.
func NewServer(addr string, provider DatasetProvider, registry kommuneinfo.Source, logger *slog.Logger) *Server {
	s := &Server{
		provider: provider,
		registry: registry,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/municipalities", s.handleMunicipalities)
		r.Get("/counties", s.handleCounties)
		r.Get("/map", s.handleMap)
		r.Get("/registry", s.handleRegistry)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// view resolves the filtered dataset for a request, writing the error
// response itself when the dataset cannot be served. The bool reports
// whether the caller should proceed.
func (s *Server) view(w http.ResponseWriter, r *http.Request) ([]domain.MergedRecord, bool) {
	ds, err := s.provider.Dataset()
	if err != nil {
		s.writeDatasetError(w, err)
		return nil, false
	}

	support, err := domain.ParseSupportFilter(r.URL.Query().Get("support"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, false
	}
	f := domain.Filter{
		County:  r.URL.Query().Get("county"),
		Support: support,
	}
	return f.Apply(ds.Records), true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, domain.Summarize(records))
}

func (s *Server) handleMunicipalities(w http.ResponseWriter, r *http.Request) {
	records, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":          len(records),
		"municipalities": records,
	})
}

// handleCounties serves the county filter options. The list always covers
// the full dataset so narrowing by county never hides the other choices.
func (s *Server) handleCounties(w http.ResponseWriter, _ *http.Request) {
	ds, err := s.provider.Dataset()
	if err != nil {
		s.writeDatasetError(w, err)
		return
	}
	counties := domain.Counties(ds.Records)
	if counties == nil {
		counties = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"counties": counties})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	records, ok := s.view(w, r)
	if !ok {
		return
	}
	points := domain.MapPoints(records)
	if points == nil {
		points = []domain.MapPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

// handleRegistry serves the official municipality registry. Failures
// degrade to an empty list: the registry is enrichment, never a reason
// to error a dashboard request.
func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	municipalities := kommuneinfo.MunicipalitiesOrEmpty(r.Context(), s.registry, s.logger)
	if municipalities == nil {
		municipalities = []kommuneinfo.Municipality{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":          len(municipalities),
		"municipalities": municipalities,
	})
}

// writeDatasetError maps a dataset build failure to a 503 carrying the
// diagnostic and its remediation hints.
func (s *Server) writeDatasetError(w http.ResponseWriter, err error) {
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": loadErr.Error(),
			"hints": loadErr.Hints,
		})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
