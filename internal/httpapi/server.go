// Package httpapi exposes the scoreboard's operational surface: a health
// probe, a status dump, and the Prometheus scrape endpoint on its own port.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/metrics"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// Server owns the status listener and, when enabled, the metrics listener.
type Server struct {
	logger  *slog.Logger
	status  *http.Server
	metrics *http.Server
}

// New wires the status routes behind the logging middleware. promHandler may
// be nil when telemetry is disabled; the metrics listener is then skipped.
func New(cfg config.Config, source Introspector, promHandler http.Handler, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	s := &Server{logger: logger}

	if cfg.HTTP.Enabled {
		handler := loggingMiddleware(logger, recorder, NewHandler(source, logger))
		s.status = &http.Server{
			Addr:         ":" + cfg.HTTP.Port,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}
	}

	if cfg.Metrics.Enabled && promHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promHandler)
		s.metrics = &http.Server{
			Addr:         ":" + cfg.Metrics.Port,
			Handler:      mux,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}
	}

	return s
}

// Start launches each configured listener on its own goroutine. A listener
// failing after startup is logged; the display loop keeps running without it.
func (s *Server) Start() {
	launch := func(name string, srv *http.Server) {
		if srv == nil {
			return
		}
		logging.Info(s.logger, name+" server starting", "addr", srv.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error(s.logger, name+" server failed", err)
			}
		}()
	}
	launch("status", s.status)
	launch("metrics", s.metrics)
}

// Shutdown drains both listeners.
func (s *Server) Shutdown(ctx context.Context) {
	for name, srv := range map[string]*http.Server{"status": s.status, "metrics": s.metrics} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			logging.Warn(s.logger, name+" server shutdown failed", "err", err)
		}
	}
}
