package otel

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// NoOpExporter is a report exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) Export(ctx context.Context, r *domain.Report) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
