package ports

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// ReportExporter publishes a generated report to an external system.
type ReportExporter interface {
	// Export publishes one report.
	Export(ctx context.Context, r *domain.Report) error
	// Close shuts down the exporter and flushes any pending data.
	Close(ctx context.Context) error
}

// MetricsRecorder exposes the latest report as scrapeable gauges.
type MetricsRecorder interface {
	RecordReport(r *domain.Report)
}
