package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

type stubSource struct {
	raw *domain.RawActivity
	err error
}

func (s *stubSource) Load(ctx context.Context) (*domain.RawActivity, error) {
	return s.raw, s.err
}

func (s *stubSource) Describe() string { return "stub" }

type stubExporter struct {
	calls int
	err   error
}

func (e *stubExporter) Export(ctx context.Context, r *domain.Report) error {
	e.calls++
	return e.err
}

func (e *stubExporter) Close(ctx context.Context) error { return nil }

func fixedEngine() *Engine {
	e := NewEngine()
	e.Now = func() time.Time { return time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC) }
	return e
}

func TestService_Report(t *testing.T) {
	exp := &stubExporter{err: errors.New("collector down")}
	svc := NewService(
		&stubSource{raw: decodeRaw(t, exampleActivity)},
		NewPreprocessor(PreprocessOptions{Location: time.UTC}),
		fixedEngine(),
		exp,
		nil,
	)

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if exp.calls != 1 {
		t.Errorf("exporter calls = %d, want 1", exp.calls)
	}
	if report.ProductivityScore != 45 {
		t.Errorf("productivity = %d, want 45", report.ProductivityScore)
	}
	if report.Summary.MostUsedApp != "code.exe" {
		t.Errorf("most used = %q", report.Summary.MostUsedApp)
	}
	if report.Timezone != "UTC" {
		t.Errorf("timezone = %q", report.Timezone)
	}
	if len(report.Insights) != 3 {
		t.Errorf("insights = %d", len(report.Insights))
	}
}

func TestService_LoadError(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewService(&stubSource{err: cause}, NewPreprocessor(PreprocessOptions{}), NewEngine(), nil, nil)

	_, err := svc.Report(context.Background())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Source != "stub" || !errors.Is(err, cause) {
		t.Errorf("unexpected load error %v", loadErr)
	}
}

func TestService_PreprocessErrorIsNotLoadError(t *testing.T) {
	raw := decodeRaw(t, `{"x": {"total_time": 1, "total_sessions": 1, "sessions": [{"start_time": "bad", "end_time": "bad"}]}}`)
	svc := NewService(&stubSource{raw: raw}, NewPreprocessor(PreprocessOptions{}), NewEngine(), nil, nil)

	_, err := svc.Report(context.Background())
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		t.Fatal("did not expect a LoadError")
	}
	if !errors.Is(err, ErrMalformedTimestamp) {
		t.Fatalf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestEngine_GenerateEmptyDatasetHasNoNaN(t *testing.T) {
	report := fixedEngine().Generate(&domain.Dataset{Location: time.UTC})

	if report.ProductivityScore != 0 || report.FocusScore != 0 || report.SwitchingRate != 0 {
		t.Errorf("expected zero scores, got %+v", report)
	}
	if report.WorkLife.Status != "No Data" {
		t.Errorf("status = %q", report.WorkLife.Status)
	}
	if report.PeakWindow.Observed {
		t.Error("expected unobserved peak window")
	}
	if math.IsNaN(report.Breaks.AverageMinutes) || math.IsNaN(report.Breaks.PerDay) {
		t.Error("NaN in break summary")
	}

	// encoding/json rejects NaN and Inf, so a successful marshal proves none leaked.
	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"apps", "appUsage", "durationMismatches"} {
		if decoded[key] == nil {
			t.Errorf("%s encoded as null", key)
		}
	}
}

func TestEngine_GenerateDoesNotMutateDataset(t *testing.T) {
	apps := []domain.ProcessedApp{
		app("b", sess(monday(10, 0), 600)),
		app("a", sess(monday(9, 0), 1200)),
	}
	ds := &domain.Dataset{Apps: apps, Location: time.UTC}
	fixedEngine().Generate(ds)

	if ds.Apps[0].AppName != "b" || !ds.Apps[0].Sessions[0].Start.Equal(monday(10, 0)) {
		t.Error("dataset was reordered")
	}
}
