package ports

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// ActivitySource loads the raw usage mapping.
type ActivitySource interface {
	Load(ctx context.Context) (*domain.RawActivity, error)
	// Describe names the source for error messages.
	Describe() string
}

// ActivitySink persists the raw usage mapping.
type ActivitySink interface {
	Save(ctx context.Context, a *domain.RawActivity) error
}
