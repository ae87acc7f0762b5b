// Package http exposes the dashboard over a JSON API, together with health,
// readiness, metrics, and a rendered chart page.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/venue-analytics-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/venue-analytics-service/internal/dashboard"
	"github.com/couchcryptid/venue-analytics-service/internal/domain"
	"github.com/couchcryptid/venue-analytics-service/internal/report"
)

// Dashboard is the view-layer surface the server renders.
type Dashboard interface {
	CheckReadiness(ctx context.Context) error
	Current() (dashboard.Snapshot, error)
	DailyOverview(ctx context.Context) (dashboard.Overview, error)
	Day(ctx context.Context, req dashboard.DayRequest) (dashboard.DayAnalysis, error)
}

// Server exposes the dashboard API.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	weather    domain.WeatherSource
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(addr string, dash Dashboard, weather domain.WeatherSource, logger *slog.Logger) *Server {
	s := &Server{
		dash:    dash,
		weather: weather,
		logger:  logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/overview", s.handleOverview).Methods(http.MethodGet)
	api.HandleFunc("/days/{date}", s.handleDay).Methods(http.MethodGet)
	api.HandleFunc("/weather", s.handleWeather).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", s.handleCharts).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	if err := s.dash.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dash.DailyOverview(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.ISODateLayout, mux.Vars(r)["date"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	req := dashboard.DayRequest{Date: date, Benchmark: dashboard.BenchmarkNone}

	switch kind := r.URL.Query().Get("benchmark"); kind {
	case "", string(dashboard.BenchmarkNone):
	case string(dashboard.BenchmarkAverage):
		req.Benchmark = dashboard.BenchmarkAverage
	case string(dashboard.BenchmarkDate):
		benchDate, err := time.Parse(domain.ISODateLayout, r.URL.Query().Get("benchmark_date"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid benchmark_date, want YYYY-MM-DD"})
			return
		}
		req.Benchmark = dashboard.BenchmarkDate
		req.BenchmarkDate = benchDate
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "benchmark must be none, date, or average"})
		return
	}

	if period, err := customPeriod(r); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	} else if period != nil {
		req.CustomPeriod = period
	}

	view, err := s.dash.Day(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	start, err1 := time.Parse(domain.ISODateLayout, r.URL.Query().Get("start"))
	end, err2 := time.Parse(domain.ISODateLayout, r.URL.Query().Get("end"))
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start and end must be YYYY-MM-DD"})
		return
	}

	observations, err := s.weather.FetchRange(r.Context(), start, end)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, openmeteo.ErrInvalidDate) ||
			errors.Is(err, openmeteo.ErrInvertedRange) ||
			errors.Is(err, openmeteo.ErrRangeTooWide) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, observations)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dash.Current()
	if err != nil {
		s.writeError(w, err)
		return
	}

	var latestHourly []domain.VisitorRecord
	if len(snap.Days) > 0 {
		latestHourly = domain.RecordsForDay(snap.Records, snap.Days[len(snap.Days)-1].Date)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.DashboardPage(snap.Days, latestHourly).Render(w); err != nil {
		s.logger.Error("render chart page failed", "error", err)
	}
}

// customPeriod parses the optional custom_start/custom_end hour window.
func customPeriod(r *http.Request) (*domain.TimePeriod, error) {
	startStr := r.URL.Query().Get("custom_start")
	endStr := r.URL.Query().Get("custom_end")
	if startStr == "" && endStr == "" {
		return nil, nil
	}

	start, err1 := strconv.Atoi(startStr)
	end, err2 := strconv.Atoi(endStr)
	if err1 != nil || err2 != nil || start < 0 || end > 24 || start >= end {
		return nil, errors.New("custom_start and custom_end must be hours with custom_start < custom_end")
	}
	return &domain.TimePeriod{Name: "Custom", StartHour: start, EndHour: end}, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, dashboard.ErrNotReady) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	s.logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
