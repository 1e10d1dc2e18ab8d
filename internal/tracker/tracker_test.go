package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

type scriptedProbe struct {
	samples []*domain.WindowInfo
	i       int
	err     error
}

func (p *scriptedProbe) Active(ctx context.Context) (*domain.WindowInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.i >= len(p.samples) {
		return nil, nil
	}
	s := p.samples[p.i]
	p.i++
	return s, nil
}

type memSink struct {
	mu    sync.Mutex
	saves int
	last  []byte
}

func (s *memSink) Save(ctx context.Context, a *domain.RawActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	b, err := a.MarshalJSON()
	s.last = b
	return err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func window(app, title string, cpu, mem float64) *domain.WindowInfo {
	return &domain.WindowInfo{ProcessName: app, Title: title, Path: "/usr/bin/" + app, CPUPercent: cpu, MemPercent: mem}
}

func TestTracker_SessionSplitting(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	sink := &memSink{}
	tr := New(&scriptedProbe{}, sink, nil, Options{Now: clock.now})

	tr.Observe(window("code", "main.go", 10, 20))
	clock.advance(30 * time.Second)
	tr.Observe(window("code", "main.go", 30, 20))
	clock.advance(30 * time.Second)
	tr.Observe(window("chrome", "docs", 5, 40))
	clock.advance(90 * time.Second)
	if err := tr.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	data := tr.Data()
	if data.Len() != 2 || data.Apps[0].Name != "code" || data.Apps[1].Name != "chrome" {
		t.Fatalf("unexpected apps %+v", data.Apps)
	}

	code := data.Get("code")
	if code.TotalSessions != 1 || len(code.Sessions) != 1 {
		t.Fatalf("code sessions = %d / %d", code.TotalSessions, len(code.Sessions))
	}
	if code.TotalTime != 60 || *code.Sessions[0].Duration != 60 {
		t.Errorf("code total = %v", code.TotalTime)
	}
	if code.AvgCPUUsage != 17.5 {
		t.Errorf("code avg cpu = %v, want 17.5", code.AvgCPUUsage)
	}
	if code.LastPath != "/usr/bin/code" {
		t.Errorf("last path = %q", code.LastPath)
	}

	chrome := data.Get("chrome")
	if chrome.TotalTime != 90 || len(chrome.Sessions) != 1 {
		t.Errorf("chrome = %+v", chrome)
	}

	start, err := code.Sessions[0].StartTime.Parse(time.UTC)
	if err != nil || !start.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, %v", start, err)
	}
	if tr.Current() != "" {
		t.Errorf("current = %q after stop", tr.Current())
	}
}

func TestTracker_WindowTitles(t *testing.T) {
	tr := New(&scriptedProbe{}, &memSink{}, nil, Options{})
	tr.Observe(window("code", "a.go", 0, 0))
	tr.Observe(window("code", "b.go", 0, 0))
	tr.Observe(window("code", "a.go", 0, 0))

	titles := tr.Data().Get("code").WindowTitles
	if len(titles) != 2 || titles[0] != "a.go" || titles[1] != "b.go" {
		t.Errorf("titles = %v", titles)
	}
}

func TestTracker_NilSampleIgnored(t *testing.T) {
	tr := New(&scriptedProbe{}, &memSink{}, nil, Options{})
	tr.Observe(nil)
	if tr.Data().Len() != 0 || tr.Current() != "" {
		t.Error("nil sample should change nothing")
	}
}

func TestTracker_ContinuesExistingData(t *testing.T) {
	initial := &domain.RawActivity{}
	initial.Add("code", domain.RawAppRecord{TotalTime: 100, TotalSessions: 2, Sessions: []domain.RawSession{}})

	clock := &fakeClock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	tr := New(&scriptedProbe{}, &memSink{}, initial, Options{Now: clock.now})
	tr.Observe(window("code", "x", 0, 0))
	clock.advance(10 * time.Second)
	if err := tr.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}

	code := tr.Data().Get("code")
	if code.TotalSessions != 3 || code.TotalTime != 110 {
		t.Errorf("code = %+v", code)
	}
}

func TestTracker_TickSaves(t *testing.T) {
	sink := &memSink{}
	probe := &scriptedProbe{samples: []*domain.WindowInfo{window("code", "x", 1, 1)}}
	tr := New(probe, sink, nil, Options{})

	if err := tr.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if sink.saves != 1 || tr.Current() != "code" {
		t.Errorf("saves = %d, current = %q", sink.saves, tr.Current())
	}

	probe.err = errors.New("probe failed")
	if err := tr.Tick(context.Background()); err == nil {
		t.Error("expected probe error")
	}
}

func TestTracker_RunStopsOnCancel(t *testing.T) {
	sink := &memSink{}
	probe := &scriptedProbe{samples: []*domain.WindowInfo{window("code", "x", 1, 1)}}
	tr := New(probe, sink, nil, Options{Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := tr.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	code := tr.Data().Get("code")
	if code == nil || len(code.Sessions) != 1 {
		t.Fatalf("expected closed session, got %+v", code)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.saves < 2 {
		t.Errorf("saves = %d", sink.saves)
	}
}
