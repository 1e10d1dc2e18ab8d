package fanout

import (
	"context"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

// SnapshotExporter stores every report in the history repository.
type SnapshotExporter struct {
	repo ports.SnapshotRepository
}

func NewSnapshotExporter(repo ports.SnapshotRepository) *SnapshotExporter {
	return &SnapshotExporter{repo: repo}
}

func (e *SnapshotExporter) Export(ctx context.Context, r *domain.Report) error {
	_, err := e.repo.Save(ctx, r)
	return err
}

func (e *SnapshotExporter) Close(ctx context.Context) error {
	return nil
}

// RecorderExporter feeds reports to a metrics recorder.
type RecorderExporter struct {
	rec ports.MetricsRecorder
}

func NewRecorderExporter(rec ports.MetricsRecorder) *RecorderExporter {
	return &RecorderExporter{rec: rec}
}

func (e *RecorderExporter) Export(ctx context.Context, r *domain.Report) error {
	e.rec.RecordReport(r)
	return nil
}

func (e *RecorderExporter) Close(ctx context.Context) error {
	return nil
}
