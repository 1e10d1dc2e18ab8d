package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

var (
	// ErrMalformedTimestamp is returned when a session boundary cannot be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrSessionOrder is returned when a session ends before it starts.
	ErrSessionOrder = errors.New("session ends before it starts")
	// ErrDurationMismatch is returned in strict mode when the duration field and
	// the timestamps disagree beyond the tolerance.
	ErrDurationMismatch = errors.New("session duration disagrees with timestamps")
	// ErrInvalidRecord is returned for negative totals or durations.
	ErrInvalidRecord = errors.New("invalid usage record")
)

// DurationSource selects the canonical session length.
type DurationSource string

const (
	// DurationFromTimestamps uses end - start and validates the duration field against it.
	DurationFromTimestamps DurationSource = "timestamps"
	// DurationFromField uses the duration field and validates the timestamps against it.
	DurationFromField DurationSource = "field"
)

// DefaultTolerance is the allowed gap between the duration field and end - start.
const DefaultTolerance = 2 * time.Second

// ParseDurationSource validates a configured duration source name.
func ParseDurationSource(s string) (DurationSource, error) {
	switch DurationSource(s) {
	case "", DurationFromTimestamps:
		return DurationFromTimestamps, nil
	case DurationFromField:
		return DurationFromField, nil
	default:
		return "", fmt.Errorf("unknown duration source %q (use %q or %q)", s, DurationFromTimestamps, DurationFromField)
	}
}

// PreprocessOptions configures how raw records are normalized.
type PreprocessOptions struct {
	// Location is the analysis time zone. Nil means time.Local.
	Location *time.Location
	Source   DurationSource
	// Tolerance of zero means DefaultTolerance.
	Tolerance time.Duration
	// Strict fails on the first duration mismatch instead of reporting it.
	Strict bool
}

// Preprocessor turns the raw mapping into the processed dataset.
type Preprocessor struct {
	opts PreprocessOptions
}

// NewPreprocessor creates a preprocessor, filling option defaults.
func NewPreprocessor(opts PreprocessOptions) *Preprocessor {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Source == "" {
		opts.Source = DurationFromTimestamps
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Preprocessor{opts: opts}
}

// Location returns the analysis time zone.
func (p *Preprocessor) Location() *time.Location {
	return p.opts.Location
}

// Process normalizes every record. It either returns the complete dataset or an error;
// there is no partial output.
func (p *Preprocessor) Process(raw *domain.RawActivity) (*domain.Dataset, error) {
	ds := &domain.Dataset{
		Apps:       make([]domain.ProcessedApp, 0),
		Location:   p.opts.Location,
		Mismatches: make([]domain.DurationMismatch, 0),
	}
	if raw == nil {
		return ds, nil
	}

	for _, entry := range raw.Apps {
		app, mismatches, err := p.processApp(entry.Name, entry.Record)
		if err != nil {
			return nil, err
		}
		ds.Apps = append(ds.Apps, app)
		ds.Mismatches = append(ds.Mismatches, mismatches...)
	}
	return ds, nil
}

func (p *Preprocessor) processApp(name string, rec domain.RawAppRecord) (domain.ProcessedApp, []domain.DurationMismatch, error) {
	if rec.TotalTime < 0 || math.IsNaN(rec.TotalTime) || math.IsInf(rec.TotalTime, 0) {
		return domain.ProcessedApp{}, nil, fmt.Errorf("%w: app %q has total_time %v", ErrInvalidRecord, name, rec.TotalTime)
	}
	if rec.TotalSessions < 0 {
		return domain.ProcessedApp{}, nil, fmt.Errorf("%w: app %q has total_sessions %d", ErrInvalidRecord, name, rec.TotalSessions)
	}

	app := domain.ProcessedApp{
		AppName:          name,
		TotalTime:        rec.TotalTime,
		SessionsCount:    rec.TotalSessions,
		AvgSessionLength: AverageSessionLength(rec.TotalTime, rec.TotalSessions),
		CPUUsage:         rec.AvgCPUUsage,
		MemoryUsage:      rec.AvgMemoryUsage,
		Path:             rec.LastPath,
		Sessions:         make([]domain.ProcessedSession, 0, len(rec.Sessions)),
	}

	var mismatches []domain.DurationMismatch
	for i, raw := range rec.Sessions {
		s, mismatch, err := p.processSession(name, i, raw)
		if err != nil {
			return domain.ProcessedApp{}, nil, err
		}
		if mismatch != nil {
			mismatches = append(mismatches, *mismatch)
		}
		app.Sessions = append(app.Sessions, s)
	}
	return app, mismatches, nil
}

func (p *Preprocessor) processSession(app string, idx int, raw domain.RawSession) (domain.ProcessedSession, *domain.DurationMismatch, error) {
	start, err := raw.StartTime.Parse(p.opts.Location)
	if err != nil {
		return domain.ProcessedSession{}, nil, fmt.Errorf("%w: app %q session %d start_time %q: %v",
			ErrMalformedTimestamp, app, idx, raw.StartTime.String(), err)
	}
	end, err := raw.EndTime.Parse(p.opts.Location)
	if err != nil {
		return domain.ProcessedSession{}, nil, fmt.Errorf("%w: app %q session %d end_time %q: %v",
			ErrMalformedTimestamp, app, idx, raw.EndTime.String(), err)
	}
	if end.Before(start) {
		return domain.ProcessedSession{}, nil, fmt.Errorf("%w: app %q session %d (%s > %s)",
			ErrSessionOrder, app, idx, raw.StartTime.String(), raw.EndTime.String())
	}

	derived := end.Sub(start).Seconds()
	s := domain.ProcessedSession{
		StartTime:        raw.StartTime,
		EndTime:          raw.EndTime,
		SuppliedDuration: raw.Duration,
		Duration:         derived,
		Start:            start,
		End:              end,
	}
	if raw.Duration == nil {
		return s, nil, nil
	}

	supplied := *raw.Duration
	if supplied < 0 || math.IsNaN(supplied) || math.IsInf(supplied, 0) {
		return domain.ProcessedSession{}, nil, fmt.Errorf("%w: app %q session %d has duration %v",
			ErrInvalidRecord, app, idx, supplied)
	}
	if p.opts.Source == DurationFromField {
		s.Duration = supplied
	}

	if math.Abs(supplied-derived) <= p.opts.Tolerance.Seconds() {
		return s, nil, nil
	}
	if p.opts.Strict {
		return domain.ProcessedSession{}, nil, fmt.Errorf("%w: app %q session %d duration %.3fs, timestamps give %.3fs",
			ErrDurationMismatch, app, idx, supplied, derived)
	}
	return s, &domain.DurationMismatch{App: app, Session: idx, Supplied: supplied, Derived: derived}, nil
}

// AverageSessionLength returns totalTime / sessions, or 0 when sessions is zero.
func AverageSessionLength(totalTime float64, sessions int) float64 {
	if sessions <= 0 {
		return 0
	}
	return totalTime / float64(sessions)
}
