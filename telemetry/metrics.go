// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	CommandsHandled prometheus.Counter
	CommandsDenied  prometheus.Counter
	HandlerPanics   prometheus.Counter
	MessagesSent    prometheus.Counter
	SendFailures    prometheus.Counter
	AutoPosts       prometheus.Counter
	AIRequests      prometheus.Counter
	AIFailures      prometheus.Counter

	// Histograms (seconds)
	AIRequestDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsHandled = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_commands_handled_total", Help: "Number of commands executed"})
		CommandsDenied = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_commands_denied_total", Help: "Number of commands denied for insufficient tier"})
		HandlerPanics = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_handler_panics_total", Help: "Number of command handler panics recovered at the dispatch boundary"})
		MessagesSent = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_messages_sent_total", Help: "Number of outbound chat messages sent"})
		SendFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_send_failures_total", Help: "Number of outbound sends that failed"})
		AutoPosts = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_autoposts_total", Help: "Number of automatic promotional posts"})
		AIRequests = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_ai_requests_total", Help: "Number of AI chat requests attempted"})
		AIFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "chefbot_ai_failures_total", Help: "Number of AI chat requests that failed"})
		AIRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "chefbot_ai_request_duration_seconds", Help: "AI request duration seconds", Buckets: prometheus.DefBuckets})
	})
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
