package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

func TestProductivityScore(t *testing.T) {
	weights := domain.HourlyWeights()
	rules := domain.ProductivityCategories

	tests := []struct {
		name string
		apps []domain.ProcessedApp
		want int
	}{
		{
			// 1h x 2 x 1.5 + 0.5h x 2 x 1.5 = 4.5
			name: "code on monday",
			apps: []domain.ProcessedApp{app("code.exe", sess(monday(9, 0), 3600), sess(monday(14, 0), 1800))},
			want: 45,
		},
		{
			// 1h x 1 x 0.5
			name: "late night slack",
			apps: []domain.ProcessedApp{app("slack.exe", sess(monday(23, 0), 3600))},
			want: 5,
		},
		{
			name: "neutral contributes nothing",
			apps: []domain.ProcessedApp{app("chrome.exe", sess(monday(10, 0), 7200))},
			want: 0,
		},
		{
			name: "negative sum clamps to zero",
			apps: []domain.ProcessedApp{app("tiktok", sess(monday(10, 0), 7200))},
			want: 0,
		},
		{
			// 2h x 2 x 1.0 - 1h x 1 x 1.0 = 3
			name: "mixed tiers",
			apps: []domain.ProcessedApp{
				app("terminal", sess(monday(19, 0), 7200)),
				app("netflix", sess(monday(21, 0), 3600)),
			},
			want: 30,
		},
		{
			name: "unbounded above",
			apps: []domain.ProcessedApp{app("code.exe", sess(monday(9, 0), 8*3600))},
			want: 240,
		},
		{
			name: "no apps",
			apps: nil,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductivityScore(tt.apps, rules, weights); got != tt.want {
				t.Errorf("ProductivityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFocusScore(t *testing.T) {
	tests := []struct {
		name string
		apps []domain.ProcessedApp
		want int
	}{
		{
			name: "half long sessions",
			apps: []domain.ProcessedApp{
				app("a", sess(monday(9, 0), 600), sess(monday(10, 0), 60)),
				app("b", sess(monday(11, 0), 301), sess(monday(12, 0), 300)),
			},
			want: 50,
		},
		{
			name: "zero sessions",
			apps: []domain.ProcessedApp{{AppName: "idle"}},
			want: 0,
		},
		{
			name: "no apps",
			apps: nil,
			want: 0,
		},
		{
			name: "one of three rounds",
			apps: []domain.ProcessedApp{app("a", sess(monday(9, 0), 900), sess(monday(10, 0), 10), sess(monday(11, 0), 10))},
			want: 33,
		},
		{
			name: "counter lower than recorded sessions is capped",
			apps: []domain.ProcessedApp{{
				AppName:       "a",
				SessionsCount: 1,
				Sessions:      []domain.ProcessedSession{sess(monday(9, 0), 900), sess(monday(10, 0), 900)},
			}},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FocusScore(tt.apps)
			if got != tt.want {
				t.Errorf("FocusScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("FocusScore() = %d out of range", got)
			}
		})
	}
}

func TestSwitchingRate(t *testing.T) {
	tests := []struct {
		name string
		apps []domain.ProcessedApp
		want int
	}{
		{
			name: "four sessions over two hours",
			apps: []domain.ProcessedApp{
				app("a", sess(monday(9, 0), 1800), sess(monday(10, 0), 1800)),
				app("b", sess(monday(11, 0), 1800), sess(monday(12, 0), 1800)),
			},
			want: 2,
		},
		{
			name: "zero hours",
			apps: []domain.ProcessedApp{{AppName: "idle", SessionsCount: 3}},
			want: 0,
		},
		{
			name: "no apps",
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SwitchingRate(tt.apps); got != tt.want {
				t.Errorf("SwitchingRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWorkLifeStatus_Boundaries(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "Overworked"},
		{80.01, "Overworked"},
		{80, "Work-Heavy"},
		{65.5, "Work-Heavy"},
		{65, "Balanced"},
		{35.01, "Balanced"},
		{35, "Life-Heavy"},
		{20.5, "Life-Heavy"},
		{20, "Mostly Personal"},
		{0, "Mostly Personal"},
	}
	for _, tt := range tests {
		got, msg := WorkLifeStatus(tt.pct)
		if got != tt.want {
			t.Errorf("WorkLifeStatus(%v) = %q, want %q", tt.pct, got, tt.want)
		}
		if msg == "" {
			t.Errorf("WorkLifeStatus(%v) returned empty message", tt.pct)
		}
	}
}

func TestWorkLife(t *testing.T) {
	schedule := domain.DefaultWorkSchedule()
	saturday := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		apps         []domain.ProcessedApp
		wantStatus   string
		wantWork     int
		wantPersonal int
		wantWorkTime string
	}{
		{
			name: "work app in work window",
			apps: []domain.ProcessedApp{
				app("code.exe", sess(monday(9, 0), 3*3600)),
				app("spotify.exe", sess(monday(10, 0), 3600)),
			},
			wantStatus:   "Work-Heavy",
			wantWork:     75,
			wantPersonal: 25,
			wantWorkTime: "3h 0m",
		},
		{
			name: "work app outside work hours is personal",
			apps: []domain.ProcessedApp{
				app("code.exe", sess(monday(18, 0), 3600), sess(saturday, 3600)),
			},
			wantStatus:   "Mostly Personal",
			wantWork:     0,
			wantPersonal: 100,
			wantWorkTime: "0m",
		},
		{
			// 4/5 = 80% exactly must not be Overworked
			name: "exactly eighty percent",
			apps: []domain.ProcessedApp{
				app("excel.exe", sess(monday(9, 0), 4*3600)),
				app("game", sess(monday(13, 0), 3600)),
			},
			wantStatus:   "Work-Heavy",
			wantWork:     80,
			wantPersonal: 20,
			wantWorkTime: "4h 0m",
		},
		{
			name:         "no data",
			apps:         nil,
			wantStatus:   "No Data",
			wantWork:     0,
			wantPersonal: 0,
			wantWorkTime: "0m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkLife(tt.apps, schedule, domain.WorkApps)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.WorkPercentage != tt.wantWork || got.PersonalPercentage != tt.wantPersonal {
				t.Errorf("percentages = %d/%d, want %d/%d", got.WorkPercentage, got.PersonalPercentage, tt.wantWork, tt.wantPersonal)
			}
			if got.WorkTime != tt.wantWorkTime {
				t.Errorf("workTime = %q, want %q", got.WorkTime, tt.wantWorkTime)
			}
			if tt.wantStatus == "No Data" && got.Message != "No activity recorded yet" {
				t.Errorf("message = %q", got.Message)
			}
		})
	}
}

func TestWorkLife_PercentagesSumToHundred(t *testing.T) {
	apps := []domain.ProcessedApp{
		app("code.exe", sess(monday(9, 0), 1000)),
		app("notes", sess(monday(10, 0), 2000)),
		app("outlook", sess(monday(11, 0), 3001)),
	}
	wl := WorkLife(apps, domain.DefaultWorkSchedule(), domain.WorkApps)
	if sum := wl.WorkPercentage + wl.PersonalPercentage; sum < 99 || sum > 101 {
		t.Errorf("percentages sum to %d", sum)
	}
	assertFloatNear(t, "seconds", wl.WorkSeconds+wl.PersonalSeconds, 6001)
}

func TestPeakWindow(t *testing.T) {
	tests := []struct {
		name string
		apps []domain.ProcessedApp
		want domain.PeakWindow
	}{
		{
			name: "wraps past midnight",
			apps: []domain.ProcessedApp{app("git", sess(monday(23, 0), 3600), sess(monday(10, 0), 60))},
			want: domain.PeakWindow{Start: 23, End: 2, Observed: true},
		},
		{
			name: "ties go to the earliest hour",
			apps: []domain.ProcessedApp{app("cursor", sess(monday(15, 0), 600), sess(monday(11, 0), 600))},
			want: domain.PeakWindow{Start: 11, End: 14, Observed: true},
		},
		{
			name: "only the narrow productive list counts",
			apps: []domain.ProcessedApp{
				app("intellij", sess(monday(8, 0), 7200)),
				app("code.exe", sess(monday(16, 0), 60)),
			},
			want: domain.PeakWindow{Start: 16, End: 19, Observed: true},
		},
		{
			name: "nothing productive",
			apps: []domain.ProcessedApp{app("chrome", sess(monday(10, 0), 600))},
			want: domain.PeakWindow{Start: 0, End: 3, Observed: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeakWindow(tt.apps, domain.PeakProductiveApps); got != tt.want {
				t.Errorf("PeakWindow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUsageHistograms(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 22, 30, 0, 0, time.UTC)
	apps := []domain.ProcessedApp{
		// spans 9:30-11:30 but lands in bucket 9 only
		app("a", sess(monday(9, 30), 7200), sess(sunday, 1800)),
		app("b", sess(monday(9, 0), 60)),
	}

	hourly := HourlyUsage(apps)
	assertFloatNear(t, "hour 9", hourly[9], 7260)
	assertFloatNear(t, "hour 10", hourly[10], 0)
	assertFloatNear(t, "hour 22", hourly[22], 1800)

	weekly := WeeklyUsage(apps)
	assertFloatNear(t, "sunday", weekly[0], 0.5)
	assertFloatNear(t, "monday", weekly[1], 7260.0/3600)
}

func TestAnalyzeBreaks(t *testing.T) {
	t.Run("gaps of 3, 10 and 20 minutes", func(t *testing.T) {
		// sessions of one minute separated by 3, 10, 20 minute gaps, split across apps
		apps := []domain.ProcessedApp{
			app("b", sess(monday(9, 4), 60), sess(monday(9, 36), 60)),
			app("a", sess(monday(9, 0), 60), sess(monday(9, 15), 60)),
		}
		got := AnalyzeBreaks(apps)
		if got.Count != 2 {
			t.Fatalf("count = %d, want 2", got.Count)
		}
		assertFloatNear(t, "average", got.AverageMinutes, 15)
		if got.ActiveDays != 1 {
			t.Errorf("activeDays = %d, want 1", got.ActiveDays)
		}
		want := "Average break duration: 15m. You take approximately 2 significant breaks per day."
		if got.Message != want {
			t.Errorf("message = %q, want %q", got.Message, want)
		}
	})

	t.Run("partial minutes truncate", func(t *testing.T) {
		apps := []domain.ProcessedApp{app("a",
			sess(monday(9, 0), 60),
			sess(monday(9, 6).Add(59*time.Second), 60), // 5m59s gap
		)}
		if got := AnalyzeBreaks(apps); got.Count != 0 {
			t.Errorf("count = %d, want 0", got.Count)
		}
	})

	t.Run("no breaks", func(t *testing.T) {
		got := AnalyzeBreaks([]domain.ProcessedApp{app("a", sess(monday(9, 0), 60))})
		if got.Count != 0 || got.AverageMinutes != 0 {
			t.Errorf("unexpected %+v", got)
		}
		if got.Message != "No significant breaks detected" {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("per day over two days", func(t *testing.T) {
		tuesday := monday(9, 0).AddDate(0, 0, 1)
		apps := []domain.ProcessedApp{app("a",
			sess(monday(9, 0), 60),
			sess(monday(10, 0), 60),
			sess(tuesday, 60),
			sess(tuesday.Add(time.Hour), 60),
		)}
		got := AnalyzeBreaks(apps)
		if got.Count != 3 || got.ActiveDays != 2 {
			t.Fatalf("unexpected %+v", got)
		}
		assertFloatNear(t, "perDay", got.PerDay, 1.5)
		if !strings.HasSuffix(got.Message, "approximately 3 significant breaks per day.") {
			t.Errorf("message = %q, want the total break count", got.Message)
		}
	})
}

func TestBreakGaps_OverlapIsNegative(t *testing.T) {
	apps := []domain.ProcessedApp{app("a", sess(monday(9, 0), 600), sess(monday(9, 5), 60))}
	gaps := BreakGaps(apps)
	if len(gaps) != 1 || gaps[0] != -5 {
		t.Errorf("gaps = %v, want [-5]", gaps)
	}
}

func TestInsights(t *testing.T) {
	breaks := domain.BreakSummary{Message: "No significant breaks detected"}
	got := Insights(domain.PeakWindow{Start: 23, End: 2}, 4, breaks)
	if len(got) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(got))
	}
	want := []domain.Insight{
		{Type: InsightProductivity, Title: "Peak Productivity Hours", Message: "You're most productive between 23:00 and 2:00"},
		{Type: InsightFocus, Title: "App Switching Pattern", Message: "You switch applications approximately 4 times per hour"},
		{Type: InsightHealth, Title: "Break Analysis", Message: "No significant breaks detected"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insight[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummary(t *testing.T) {
	apps := []domain.ProcessedApp{
		app("first", sess(monday(9, 0), 1800)),
		app("second", sess(monday(10, 0), 1800)),
		app("small", sess(monday(11, 0), 60)),
	}
	got := Summary(apps)
	if got.MostUsedApp != "second" {
		t.Errorf("most used = %q, want the later of the tied apps", got.MostUsedApp)
	}
	if got.TotalTime != "1h 1m" {
		t.Errorf("total = %q", got.TotalTime)
	}

	empty := Summary(nil)
	if empty.MostUsedApp != "" || empty.TotalTime != "0m" {
		t.Errorf("unexpected empty summary %+v", empty)
	}
}

func TestAppUsageShares(t *testing.T) {
	apps := []domain.ProcessedApp{
		app("chrome.exe", sess(monday(9, 0), 1000)),
		app("code.exe", sess(monday(10, 0), 3000)),
	}
	got := AppUsageShares(apps)
	if got[0].AppName != "code.exe" || got[0].Label != "code" {
		t.Errorf("first = %+v", got[0])
	}
	assertFloatNear(t, "share", got[0].Share, 75)
	assertFloatNear(t, "share", got[1].Share, 25)

	zero := AppUsageShares([]domain.ProcessedApp{{AppName: "idle"}})
	if zero[0].Share != 0 {
		t.Errorf("expected 0 share, got %v", zero[0].Share)
	}
}

func TestResourcesAndTimeline(t *testing.T) {
	a := app("code.exe", sess(monday(9, 0), 600), sess(monday(11, 0), 1200))
	a.CPUUsage = 12
	a.MemoryUsage = 34
	apps := []domain.ProcessedApp{a, {AppName: "idle"}}

	res := Resources(apps)
	if res[0].CPU != 12 || res[0].Memory != 34 {
		t.Errorf("resource = %+v", res[0])
	}
	assertFloatNear(t, "minutes", res[0].Minutes, 30)

	tl := BuildTimeline(apps)
	if len(tl.Rows) != 2 || len(tl.Rows[0].Intervals) != 2 {
		t.Fatalf("timeline = %+v", tl)
	}
	if !tl.Start.Equal(monday(9, 0)) || !tl.End.Equal(monday(11, 20)) {
		t.Errorf("extent = %v - %v", tl.Start, tl.End)
	}
	if tl.Rows[0].Intervals[1].Formatted != "20m" {
		t.Errorf("formatted = %q", tl.Rows[0].Intervals[1].Formatted)
	}

	if empty := BuildTimeline(nil); empty.Start != nil || empty.End != nil {
		t.Error("expected no extent for empty timeline")
	}
}
