// Package server exposes the HTTP sidecar endpoints: liveness, bot status,
// and Prometheus metrics. It injects correlation IDs into request contexts
// for consistent logging.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/chefbot/telemetry"
)

// Status is the snapshot served at /status.
type Status struct {
	Channel         string `json:"channel"`
	Uptime          string `json:"uptime"`
	Commands        int    `json:"commands"`
	AIEnabled       bool   `json:"ai_enabled"`
	AutoPostEnabled bool   `json:"autopost_enabled"`
}

// NewMux returns the HTTP handler with all routes. status is sampled on each
// /status request.
func NewMux(status func() Status) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status()); err != nil {
			slog.Warn("status encode failed", slog.Any("err", err))
		}
	})

	// Wrap with correlation ID injector.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corr := r.Header.Get("X-Correlation-ID")
		if corr == "" {
			corr = uuid.New().String()
		}
		ctx := telemetry.WithCorrelation(r.Context(), corr)
		w.Header().Set("X-Correlation-ID", corr)
		mux.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func Start(ctx context.Context, addr string, status func() Status) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(status),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("http server shutdown", slog.Any("err", err))
		}
	}()
	slog.Info("http server listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
