package prometheus

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

func TestRecorder_RecordReport(t *testing.T) {
	r := NewRecorder()

	report := &domain.Report{
		ProductivityScore: 30,
		FocusScore:        60,
		WorkLife:          domain.WorkLifeBalance{WorkPercentage: 70, PersonalPercentage: 30},
		SwitchingRate:     4,
		Breaks:            domain.BreakSummary{Count: 3},
		AppUsage: []domain.AppUsage{
			{Label: "code", Seconds: 1800},
			{Label: "chrome", Seconds: 600},
		},
		GeneratedAt: time.Unix(1705312800, 0),
	}
	report.HourlyUsage[9] = 1800
	r.RecordReport(report)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"productivity", testutil.ToFloat64(r.productivity), 30},
		{"focus", testutil.ToFloat64(r.focus), 60},
		{"work", testutil.ToFloat64(r.workShare.WithLabelValues("work")), 70},
		{"personal", testutil.ToFloat64(r.workShare.WithLabelValues("personal")), 30},
		{"switching", testutil.ToFloat64(r.switchingRate), 4},
		{"breaks", testutil.ToFloat64(r.breaks), 3},
		{"code seconds", testutil.ToFloat64(r.appSeconds.WithLabelValues("code")), 1800},
		{"hour 9 seconds", testutil.ToFloat64(r.hourlySeconds.WithLabelValues("9")), 1800},
		{"reports", testutil.ToFloat64(r.reportsTotal), 1},
		{"last report", testutil.ToFloat64(r.lastReport), 1705312800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRecorder_DropsStaleApps(t *testing.T) {
	r := NewRecorder()
	r.RecordReport(&domain.Report{AppUsage: []domain.AppUsage{{Label: "code", Seconds: 10}, {Label: "chrome", Seconds: 5}}})
	r.RecordReport(&domain.Report{AppUsage: []domain.AppUsage{{Label: "code", Seconds: 20}}})

	if n := testutil.CollectAndCount(r.appSeconds); n != 1 {
		t.Errorf("expected 1 app series, got %d", n)
	}
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RecordReport(&domain.Report{ProductivityScore: 12})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "trackit_productivity_score 12") {
		t.Errorf("metrics output missing productivity score:\n%s", body)
	}
}
