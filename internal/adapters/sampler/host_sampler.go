package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// HostSampler reads machine-wide CPU and memory usage.
type HostSampler struct {
	now func() time.Time
}

func NewHostSampler() *HostSampler {
	return &HostSampler{now: time.Now}
}

func (s *HostSampler) Snapshot(ctx context.Context) (*domain.HostSnapshot, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU metrics: %w", err)
	}
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU count: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	snap := &domain.HostSnapshot{
		Hostname:      info.Hostname,
		Platform:      info.Platform,
		UptimeSeconds: info.Uptime,
		CPUCount:      cores,
		MemPercent:    vm.UsedPercent,
		MemUsed:       vm.Used,
		MemTotal:      vm.Total,
		SampledAt:     s.now(),
	}
	if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	return snap, nil
}
