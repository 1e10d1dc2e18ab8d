package fanout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

// Named pairs an exporter with the name used in logs and errors.
type Named struct {
	Name     string
	Exporter ports.ReportExporter
}

// Exporter sends each report to every target concurrently. One slow or failing
// target never blocks or cancels the others.
type Exporter struct {
	targets []Named
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a fan-out exporter. A zero timeout means no per-target deadline.
func New(timeout time.Duration, logger *zap.Logger, targets ...Named) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{targets: targets, timeout: timeout, logger: logger}
}

// Len returns the number of targets.
func (e *Exporter) Len() int {
	return len(e.targets)
}

// Export returns the joined errors of all failed targets.
func (e *Exporter) Export(ctx context.Context, r *domain.Report) error {
	return e.each(ctx, func(ctx context.Context, x ports.ReportExporter) error {
		return x.Export(ctx, r)
	})
}

// Close closes every target.
func (e *Exporter) Close(ctx context.Context) error {
	return e.each(ctx, func(ctx context.Context, x ports.ReportExporter) error {
		return x.Close(ctx)
	})
}

func (e *Exporter) each(ctx context.Context, fn func(context.Context, ports.ReportExporter) error) error {
	errs := make([]error, len(e.targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range e.targets {
		i, t := i, t
		g.Go(func() error {
			tctx := gctx
			if e.timeout > 0 {
				var cancel context.CancelFunc
				tctx, cancel = context.WithTimeout(gctx, e.timeout)
				defer cancel()
			}

			start := time.Now()
			err := fn(tctx, t.Exporter)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", t.Name, err)
				e.logger.Warn("exporter failed", zap.String("exporter", t.Name), zap.Error(err))
				return nil
			}
			e.logger.Debug("exporter finished", zap.String("exporter", t.Name), zap.Duration("took", time.Since(start)))
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
