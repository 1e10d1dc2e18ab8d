package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aryan-gupta7/track-it-v1/internal/analytics"
	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

type stubReporter struct {
	report *domain.Report
	err    error
}

func (s stubReporter) Report(ctx context.Context) (*domain.Report, error) {
	return s.report, s.err
}

type stubHost struct{}

func (stubHost) Snapshot(ctx context.Context) (*domain.HostSnapshot, error) {
	return &domain.HostSnapshot{Hostname: "box", CPUCount: 8, MemPercent: 41.5}, nil
}

func sampleReport() *domain.Report {
	r := &domain.Report{
		ProductivityScore: 18,
		FocusScore:        50,
		WorkLife:          domain.WorkLifeBalance{Status: "Balanced", WorkPercentage: 50, PersonalPercentage: 50},
		Summary:           domain.QuickSummary{TotalTime: "1h 0m", TotalSeconds: 3600, MostUsedApp: "code.exe", MostUsedTime: "50m"},
		Insights:          []domain.Insight{{Type: "focus", Title: "App Switching Pattern", Message: "You switch applications approximately 2 times per hour"}},
		AppUsage: []domain.AppUsage{
			{AppName: "code.exe", Label: "code", Seconds: 3000, Formatted: "50m", Share: 83.3},
			{AppName: "chrome.exe", Label: "chrome", Seconds: 600, Formatted: "10m", Share: 16.7},
		},
		Resources: []domain.ResourceUsage{{AppName: "code.exe", Label: "code", CPU: 12, Memory: 30, Minutes: 50}},
		Apps:      []domain.ProcessedApp{{AppName: "code.exe"}, {AppName: "chrome.exe"}},
		Timezone:  "UTC",
	}
	r.HourlyUsage[9] = 3600
	r.WeeklyUsage[1] = 1
	return r
}

func newTestServer(r Reporter) *Server {
	return NewServer(r, Options{
		RefreshInterval: 20 * time.Millisecond,
		Metrics:         http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Host:            stubHost{},
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	h := newTestServer(stubReporter{report: sampleReport()}).Handler()

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html", "App Switching Pattern"},
		{"/health", http.StatusOK, "", "ok"},
		{"/metrics", http.StatusOK, "", "# metrics"},
		{"/static/dashboard.js", http.StatusOK, "", "refreshCharts"},
		{"/static/style.css", http.StatusOK, "text/css", ".card"},
		{"/api/report", http.StatusOK, "application/json", `"productivityScore":18`},
		{"/api/apps", http.StatusOK, "application/json", `"appName":"chrome.exe"`},
		{"/api/system", http.StatusOK, "application/json", `"hostname":"box"`},
		{"/api/charts/usage", http.StatusOK, "application/json", `"labels":["code","chrome"]`},
		{"/api/charts/weekly", http.StatusOK, "application/json", `"Sun"`},
		{"/api/charts/resources", http.StatusOK, "application/json", `"r":50`},
		{"/api/charts/timeline", http.StatusOK, "application/json", `"rows"`},
		{"/nope", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q: %s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestChartHourly(t *testing.T) {
	rec := get(t, newTestServer(stubReporter{report: sampleReport()}).Handler(), "/api/charts/hourly")

	body := decodeHourly(t, rec)
	if len(body.Labels) != 24 || body.Labels[9] != "9:00" || body.Seconds[9] != 3600 || body.Hours[9] != 1 {
		t.Errorf("unexpected hourly chart %+v", body)
	}
}

type hourlyChart struct {
	Labels  []string  `json:"labels"`
	Seconds []float64 `json:"seconds"`
	Hours   []float64 `json:"hours"`
}

func decodeHourly(t *testing.T, rec *httptest.ResponseRecorder) hourlyChart {
	t.Helper()
	var body hourlyChart
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestChartHourly_FromEngine(t *testing.T) {
	raw := &domain.RawActivity{}
	raw.Add("code.exe", domain.RawAppRecord{
		TotalTime:     3600,
		TotalSessions: 1,
		Sessions: []domain.RawSession{{
			StartTime: domain.TimestampFromString("2024-01-15T09:00:00Z"),
			EndTime:   domain.TimestampFromString("2024-01-15T10:00:00Z"),
		}},
	})
	ds, err := analytics.NewPreprocessor(analytics.PreprocessOptions{Location: time.UTC}).Process(raw)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	report := analytics.NewEngine().Generate(ds)

	rec := get(t, newTestServer(stubReporter{report: report}).Handler(), "/api/charts/hourly")
	body := decodeHourly(t, rec)
	if body.Seconds[9] != 3600 || body.Hours[9] != 1 {
		t.Errorf("hour 9 = %v seconds, %v hours; want 3600 and 1", body.Seconds[9], body.Hours[9])
	}
	for h, v := range body.Seconds {
		if h != 9 && v != 0 {
			t.Errorf("hour %d = %v, want 0", h, v)
		}
	}
}

func TestLoadFailure(t *testing.T) {
	h := newTestServer(stubReporter{err: errors.New("open activity_data.json: no such file")}).Handler()

	rec := get(t, h, "/")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Error loading activity data") {
		t.Error("missing error panel")
	}
	if strings.Contains(body, "Productivity Score") {
		t.Error("partial dashboard rendered on failure")
	}

	rec = get(t, h, "/api/report")
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), "Error loading activity data") {
		t.Errorf("api failure = %d %s", rec.Code, rec.Body.String())
	}
}

func TestSystemDisabled(t *testing.T) {
	s := NewServer(stubReporter{report: sampleReport()}, Options{})
	if rec := get(t, s.Handler(), "/api/system"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := get(t, s.Handler(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("metrics status = %d, want 404", rec.Code)
	}
}

func TestWebSocketReport(t *testing.T) {
	s := newTestServer(stubReporter{report: sampleReport()})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/report", nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	// One frame on connect, another from the broadcast tick.
	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg struct {
			Type string         `json:"type"`
			Data *domain.Report `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON %d failed: %v", i, err)
		}
		if msg.Type != "report" || msg.Data == nil || msg.Data.ProductivityScore != 18 {
			t.Errorf("frame %d = %+v", i, msg)
		}
	}
}

func TestHubReportError(t *testing.T) {
	h := NewHub(stubReporter{err: errors.New("boom")}, time.Second, nil)
	var msg Message
	if err := json.Unmarshal(h.reportMessage(context.Background()), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "error" || msg.Error != "boom" {
		t.Errorf("unexpected message %+v", msg)
	}
}
