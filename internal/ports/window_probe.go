package ports

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// WindowProbe reports the foreground window. It returns nil when no window is
// active or the owning process cannot be read.
type WindowProbe interface {
	Active(ctx context.Context) (*domain.WindowInfo, error)
}

// HostSampler reports host-wide resource usage.
type HostSampler interface {
	Snapshot(ctx context.Context) (*domain.HostSnapshot, error)
}
