package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

// LoadError wraps a failure to fetch or decode the raw activity data.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load activity data from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Service runs one load, preprocess and generate pass per call.
type Service struct {
	source   ports.ActivitySource
	pre      *Preprocessor
	engine   *Engine
	exporter ports.ReportExporter
	logger   *zap.Logger
}

// NewService creates a new analytics service. exporter may be nil.
func NewService(source ports.ActivitySource, pre *Preprocessor, engine *Engine, exporter ports.ReportExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   source,
		pre:      pre,
		engine:   engine,
		exporter: exporter,
		logger:   logger,
	}
}

// Source returns the configured activity source.
func (s *Service) Source() ports.ActivitySource {
	return s.source
}

// Dataset loads and preprocesses the raw data.
func (s *Service) Dataset(ctx context.Context) (*domain.Dataset, error) {
	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, &LoadError{Source: s.source.Describe(), Err: err}
	}

	ds, err := s.pre.Process(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess activity data: %w", err)
	}
	for _, m := range ds.Mismatches {
		s.logger.Warn("session duration disagrees with timestamps",
			zap.String("app", m.App),
			zap.Int("session", m.Session),
			zap.Float64("supplied", m.Supplied),
			zap.Float64("derived", m.Derived),
		)
	}
	return ds, nil
}

// Report runs the full pipeline and exports the result. Export failures are logged
// and never fail the report.
func (s *Service) Report(ctx context.Context) (*domain.Report, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	report := s.engine.Generate(ds)
	s.logger.Debug("report generated",
		zap.Int("apps", len(report.Apps)),
		zap.Int("productivity_score", report.ProductivityScore),
		zap.Int("focus_score", report.FocusScore),
	)

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, report); err != nil {
			s.logger.Warn("failed to export report", zap.Error(err))
		}
	}
	return report, nil
}
