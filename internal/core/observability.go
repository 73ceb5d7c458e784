package core

import (
	"context"
	"time"
)

// MetricsRecorder receives one observation per service operation. The
// prometheus-backed implementation lives in internal/metrics; tests use
// NopMetrics or a local spy.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

// Observe implements MetricsRecorder.
func (NopMetrics) Observe(context.Context, string, bool, time.Duration) {}
