package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/AJYORK88/ConnectSphere-Online/contract"
)

var _ contract.Worker = (*HealthMonitorWorker)(nil)

// StatsProvider supplies a point-in-time snapshot of chat metrics.
type StatsProvider func() map[string]any

// HealthMonitorWorker periodically logs the server's own CPU and memory
// usage together with the router's chat counters. Purely observational; it
// never touches chat state.
type HealthMonitorWorker struct {
	log      *slog.Logger
	interval time.Duration
	stats    StatsProvider
}

func NewHealthMonitorWorker(log *slog.Logger, interval time.Duration, stats StatsProvider) *HealthMonitorWorker {
	return &HealthMonitorWorker{log: log, interval: interval, stats: stats}
}

func (w *HealthMonitorWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case <-ticker.C:
			attrs := []any{}
			if cpu, err := p.CPUPercent(); err == nil {
				attrs = append(attrs, "cpu_percent", cpu)
			}
			if mem, err := p.MemoryInfo(); err == nil {
				attrs = append(attrs, "rss_bytes", mem.RSS)
			}
			for key, value := range w.stats() {
				attrs = append(attrs, key, value)
			}
			w.log.Info("health", attrs...)
		}
	}
}
