package ports

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// SnapshotRepository stores generated reports for the history view.
type SnapshotRepository interface {
	Save(ctx context.Context, r *domain.Report) (string, error)
	List(ctx context.Context, limit int) ([]domain.Snapshot, error)
	// Get returns nil when the snapshot does not exist.
	Get(ctx context.Context, id string) (*domain.Report, error)
	DeleteBefore(ctx context.Context, before string) (int64, error)
}
