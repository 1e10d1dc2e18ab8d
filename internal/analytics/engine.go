package analytics

import (
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// Engine computes a report from a processed dataset. It never modifies its input.
type Engine struct {
	Categories   []domain.CategoryRule
	PeakApps     domain.Keywords
	WorkApps     domain.Keywords
	Schedule     domain.WorkSchedule
	HourlyWeight [24]float64
	Now          func() time.Time
}

// NewEngine returns an engine with the standard classification tables.
func NewEngine() *Engine {
	return &Engine{
		Categories:   domain.ProductivityCategories,
		PeakApps:     domain.PeakProductiveApps,
		WorkApps:     domain.WorkApps,
		Schedule:     domain.DefaultWorkSchedule(),
		HourlyWeight: domain.HourlyWeights(),
		Now:          time.Now,
	}
}

// Generate runs every metric over ds.
func (e *Engine) Generate(ds *domain.Dataset) *domain.Report {
	apps := ds.Apps
	loc := ds.Location
	if loc == nil {
		loc = time.Local
	}

	peak := PeakWindow(apps, e.PeakApps)
	rate := SwitchingRate(apps)
	breaks := AnalyzeBreaks(apps)

	mismatches := ds.Mismatches
	if mismatches == nil {
		mismatches = make([]domain.DurationMismatch, 0)
	}
	reportApps := apps
	if reportApps == nil {
		reportApps = make([]domain.ProcessedApp, 0)
	}

	return &domain.Report{
		ProductivityScore:  ProductivityScore(apps, e.Categories, e.HourlyWeight),
		FocusScore:         FocusScore(apps),
		WorkLife:           WorkLife(apps, e.Schedule, e.WorkApps),
		PeakWindow:         peak,
		SwitchingRate:      rate,
		Breaks:             breaks,
		HourlyUsage:        HourlyUsage(apps),
		WeeklyUsage:        WeeklyUsage(apps),
		Insights:           Insights(peak, rate, breaks),
		Summary:            Summary(apps),
		AppUsage:           AppUsageShares(apps),
		Resources:          Resources(apps),
		Timeline:           BuildTimeline(apps),
		Apps:               reportApps,
		Timezone:           loc.String(),
		GeneratedAt:        e.Now().In(loc),
		DurationMismatches: mismatches,
	}
}
