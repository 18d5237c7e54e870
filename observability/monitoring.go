package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats aggregates broker metrics for logs and the debug endpoint.
type Stats struct {
	Connections int64   `json:"connections"`
	Sessions    int     `json:"sessions"`
	FramesIn    uint64  `json:"frames_in"`
	Broadcasts  uint64  `json:"broadcasts"`
	Errors      uint64  `json:"errors"`
	Goroutines  int     `json:"goroutines"`
	RSSBytes    uint64  `json:"rss_bytes"`
	CPUPercent  float64 `json:"cpu_percent"`
	UptimeSec   int64   `json:"uptime_sec"`
}

// Monitor collects realtime counters. All increments are atomic; Stats
// snapshots are cheap and safe to call from any goroutine.
type Monitor struct {
	log   *slog.Logger
	start time.Time
	proc  *process.Process

	connections int64
	framesIn    uint64
	broadcasts  uint64
	errorCount  uint64

	// SessionsFn resolves the authenticated session count at snapshot time.
	SessionsFn func() int
}

func NewMonitor(log *slog.Logger) *Monitor {
	// failure to resolve our own process only disables self stats
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("process self stats unavailable", "error", err)
		proc = nil
	}
	return &Monitor{log: log, start: time.Now(), proc: proc}
}

// The increment methods are nil-safe so wiring a monitor stays optional.

func (m *Monitor) ConnOpened() {
	if m != nil {
		atomic.AddInt64(&m.connections, 1)
	}
}

func (m *Monitor) ConnClosed() {
	if m != nil {
		atomic.AddInt64(&m.connections, -1)
	}
}

func (m *Monitor) IncrFrames() {
	if m != nil {
		atomic.AddUint64(&m.framesIn, 1)
	}
}

func (m *Monitor) IncrFanout() {
	if m != nil {
		atomic.AddUint64(&m.broadcasts, 1)
	}
}

func (m *Monitor) IncrErrors() {
	if m != nil {
		atomic.AddUint64(&m.errorCount, 1)
	}
}

func (m *Monitor) Stats() Stats {
	stats := Stats{
		Connections: atomic.LoadInt64(&m.connections),
		FramesIn:    atomic.LoadUint64(&m.framesIn),
		Broadcasts:  atomic.LoadUint64(&m.broadcasts),
		Errors:      atomic.LoadUint64(&m.errorCount),
		Goroutines:  runtime.NumGoroutine(),
		UptimeSec:   int64(time.Since(m.start).Seconds()),
	}
	if m.SessionsFn != nil {
		stats.Sessions = m.SessionsFn()
	}
	if m.proc != nil {
		if mem, err := m.proc.MemoryInfo(); err == nil {
			stats.RSSBytes = mem.RSS
		}
		if cpu, err := m.proc.Percent(0); err == nil {
			stats.CPUPercent = cpu
		}
	}
	return stats
}
