package tracker

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

// DefaultInterval is how often the foreground window is sampled.
const DefaultInterval = time.Second

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	Interval time.Duration
	Now      func() time.Time
	Logger   *zap.Logger
}

// Tracker samples the foreground window and accumulates per-app sessions. It is not
// safe for concurrent use; Run owns it for its lifetime.
type Tracker struct {
	probe    ports.WindowProbe
	sink     ports.ActivitySink
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger

	data    *domain.RawActivity
	current string
	started time.Time
}

// New creates a tracker that continues from initial, which may be nil.
func New(probe ports.WindowProbe, sink ports.ActivitySink, initial *domain.RawActivity, opts Options) *Tracker {
	if initial == nil {
		initial = &domain.RawActivity{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Tracker{
		probe:    probe,
		sink:     sink,
		interval: opts.Interval,
		now:      opts.Now,
		logger:   opts.Logger,
		data:     initial,
	}
}

// Data returns the accumulated activity.
func (t *Tracker) Data() *domain.RawActivity {
	return t.data
}

// Current returns the app with an open session, or "".
func (t *Tracker) Current() string {
	return t.current
}

// Run samples every interval until ctx is done, then closes the open session and
// saves once more.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("tracking started", zap.Duration("interval", t.interval))
	for {
		if err := t.Tick(ctx); err != nil {
			t.logger.Warn("tick failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.Stop(stopCtx); err != nil {
				return err
			}
			t.logger.Info("tracking stopped", zap.Int("apps", t.data.Len()))
			return nil
		case <-ticker.C:
		}
	}
}

// Tick samples once, updates the activity and saves it.
func (t *Tracker) Tick(ctx context.Context) error {
	info, err := t.probe.Active(ctx)
	if err != nil {
		return fmt.Errorf("failed to read active window: %w", err)
	}
	t.Observe(info)
	return t.save(ctx)
}

// Observe applies one sample. A nil sample changes nothing.
func (t *Tracker) Observe(info *domain.WindowInfo) {
	if info == nil {
		return
	}
	app := info.ProcessName

	if t.data.Get(app) == nil {
		t.data.Add(app, domain.RawAppRecord{
			LastPath:     info.Path,
			WindowTitles: []string{},
			Sessions:     []domain.RawSession{},
		})
		t.logger.Debug("new application", zap.String("app", app))
	}

	rec := t.data.Get(app)
	if !slices.Contains(rec.WindowTitles, info.Title) {
		rec.WindowTitles = append(rec.WindowTitles, info.Title)
	}

	if t.current != app {
		now := t.now()
		t.closeSession(now)
		t.current = app
		t.started = now
		rec = t.data.Get(app)
		rec.TotalSessions++
	}

	rec.AvgCPUUsage = (rec.AvgCPUUsage + info.CPUPercent) / 2
	rec.AvgMemoryUsage = (rec.AvgMemoryUsage + info.MemPercent) / 2
}

// Stop closes the open session and saves.
func (t *Tracker) Stop(ctx context.Context) error {
	t.closeSession(t.now())
	t.current = ""
	return t.save(ctx)
}

func (t *Tracker) closeSession(end time.Time) {
	if t.current == "" {
		return
	}
	rec := t.data.Get(t.current)
	if rec == nil {
		return
	}

	duration := end.Sub(t.started).Seconds()
	rec.Sessions = append(rec.Sessions, domain.RawSession{
		StartTime: domain.TimestampFromTime(t.started),
		EndTime:   domain.TimestampFromTime(end),
		Duration:  &duration,
	})
	rec.TotalTime += duration
}

func (t *Tracker) save(ctx context.Context) error {
	if err := t.sink.Save(ctx, t.data); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}
