// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/intentpage/internal/middleware"
	"github.com/tomtom215/intentpage/internal/output"
	"github.com/tomtom215/intentpage/internal/pageorder"
	"github.com/tomtom215/intentpage/internal/simulate"
)

// ShutdownTimeout bounds graceful shutdown of the status server.
const ShutdownTimeout = 10 * time.Second

// Config configures the status server.
type Config struct {
	// Addr is the listen address, e.g. ":9464".
	Addr string

	// CORSOrigins enables CORS for the listed origins. Empty disables CORS.
	CORSOrigins []string

	// RateLimit is the per-IP request budget per minute for /api/v1.
	// 0 disables rate limiting.
	RateLimit int
}

// Server exposes metrics and the latest simulation report over HTTP.
type Server struct {
	cfg     Config
	logger  zerolog.Logger
	report  atomic.Pointer[simulate.Report]
	running atomic.Bool
}

// NewServer creates a status server. Call Serve to start listening.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewServer(cfg Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// SetRunning marks whether a simulation is in progress.
func (s *Server) SetRunning(running bool) {
	s.running.Store(running)
}

// SetReport publishes a completed report.
func (s *Server) SetReport(r *simulate.Report) {
	s.report.Store(r)
}

// Handler builds the Chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(httprate.Limit(
				s.cfg.RateLimit,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
				}),
			))
		}
		r.Get("/health", s.handleHealth)
		r.Get("/strategies", s.handleStrategies)
		r.Get("/report", s.handleReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	return r
}

// Serve listens on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Status server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown status server: %w", err)
	}
	s.logger.Info().Msg("Status server stopped")
	return nil
}

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Running   bool   `json:"running"`
	HasReport bool   `json:"has_report"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthResponse{
		Status:    "ok",
		Running:   s.running.Load(),
		HasReport: s.report.Load() != nil,
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, pageorder.Names())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.report.Load()
	if report == nil {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "no completed simulation report")
		return
	}
	WriteSuccess(w, r, output.NewJSONReport(report))
}
