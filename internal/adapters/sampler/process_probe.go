package sampler

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ProcessProbe finds the foreground window's pid with an external command and reads
// the owning process through gopsutil.
type ProcessProbe struct {
	probe []string
	title []string
	run   Runner
}

// NewProcessProbe splits both commands on whitespace. titleCommand may be empty.
func NewProcessProbe(probeCommand, titleCommand string) (*ProcessProbe, error) {
	probe := strings.Fields(probeCommand)
	if len(probe) == 0 {
		return nil, fmt.Errorf("probe command is empty")
	}
	return &ProcessProbe{probe: probe, title: strings.Fields(titleCommand), run: execRunner}, nil
}

// WithRunner replaces how commands are executed.
func (p *ProcessProbe) WithRunner(run Runner) *ProcessProbe {
	p.run = run
	return p
}

// Active returns nil when there is no foreground window or its process has gone away.
func (p *ProcessProbe) Active(ctx context.Context) (*domain.WindowInfo, error) {
	out, err := p.run(ctx, p.probe[0], p.probe[1:]...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to run probe command: %w", err)
	}

	pid, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 32)
	if err != nil || pid <= 0 {
		return nil, nil
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, nil
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil || name == "" {
		return nil, nil
	}

	info := &domain.WindowInfo{ProcessName: name, PID: int32(pid)}
	if exe, err := proc.ExeWithContext(ctx); err == nil {
		info.Path = exe
	}
	if cpu, err := proc.CPUPercentWithContext(ctx); err == nil {
		info.CPUPercent = cpu
	}
	if mem, err := proc.MemoryPercentWithContext(ctx); err == nil {
		info.MemPercent = float64(mem)
	}
	info.Title = p.windowTitle(ctx)
	return info, nil
}

func (p *ProcessProbe) windowTitle(ctx context.Context) string {
	if len(p.title) == 0 {
		return ""
	}
	out, err := p.run(ctx, p.title[0], p.title[1:]...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
