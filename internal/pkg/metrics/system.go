package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// RunSystemCollector samples CPU and memory every interval until ctx is done.
func (m *Metrics) RunSystemCollector(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.CollectSystem(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Metrics) CollectSystem(ctx context.Context) {
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPercent) > 0 {
		m.SystemCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		m.SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.ApplicationMemoryUsage.Set(float64(ms.Alloc))
}
