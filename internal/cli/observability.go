package cli

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvp-joe/cortex-outline/internal/cache"
)

// ObservabilityServer exposes Prometheus metrics and a health endpoint
// reporting cache counters.
type ObservabilityServer struct {
	addr     string
	gatherer prometheus.Gatherer
	stats    func() cache.Stats
	logger   *slog.Logger
	server   *http.Server
}

// NewObservabilityServer creates a server for addr. It does not listen
// until Start.
func NewObservabilityServer(addr string, gatherer prometheus.Gatherer, stats func() cache.Stats, logger *slog.Logger) *ObservabilityServer {
	return &ObservabilityServer{
		addr:     addr,
		gatherer: gatherer,
		stats:    stats,
		logger:   logger,
	}
}

// Handler returns the HTTP routes.
func (s *ObservabilityServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Status string      `json:"status"`
			Cache  cache.Stats `json:"cache"`
		}{
			Status: "up",
			Cache:  s.stats(),
		})
	})

	return mux
}

// Start listens in the background.
func (s *ObservabilityServer) Start() {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("observability server starting", slog.String("addr", s.addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("observability server failed", slog.Any("error", err))
		}
	}()
}

// Stop shuts the server down.
func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
