package workers

import (
	"context"
	"docsync/observability"
	"log/slog"
	"time"
)

// TelemetryWorker periodically logs broker statistics so an operator can
// follow connection and traffic levels without a metrics stack.
type TelemetryWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, monitor: monitor, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats := w.monitor.Stats()
			w.log.Info("broker stats",
				"connections", stats.Connections,
				"sessions", stats.Sessions,
				"frames_in", stats.FramesIn,
				"broadcasts", stats.Broadcasts,
				"errors", stats.Errors,
				"rss_bytes", stats.RSSBytes,
				"cpu_percent", stats.CPUPercent,
			)
		}
	}
}
