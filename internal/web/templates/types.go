package templates

import (
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// WorkLife is the work/personal split card data.
type WorkLife = domain.WorkLifeBalance

// DashboardView is everything the dashboard page renders server-side. Charts are
// filled in by the browser from the JSON endpoints.
type DashboardView struct {
	ProductivityScore int
	FocusScore        int
	WorkLife          WorkLife
	Summary           domain.QuickSummary
	Insights          []domain.Insight
	Peak              domain.PeakWindow
	Breaks            domain.BreakSummary
	AppCount          int
	Timezone          string
	GeneratedAt       time.Time
	RefreshSeconds    int
}

// NewDashboardView projects a report onto the page.
func NewDashboardView(r *domain.Report, refresh time.Duration) DashboardView {
	return DashboardView{
		ProductivityScore: r.ProductivityScore,
		FocusScore:        r.FocusScore,
		WorkLife:          r.WorkLife,
		Summary:           r.Summary,
		Insights:          r.Insights,
		Peak:              r.PeakWindow,
		Breaks:            r.Breaks,
		AppCount:          len(r.Apps),
		Timezone:          r.Timezone,
		GeneratedAt:       r.GeneratedAt,
		RefreshSeconds:    int(refresh / time.Second),
	}
}

// MostUsed renders "name (duration)" or a dash without data.
func (v DashboardView) MostUsed() string {
	if v.Summary.MostUsedApp == "" {
		return "-"
	}
	return v.Summary.MostUsedApp + " (" + v.Summary.MostUsedTime + ")"
}

// PeakLabel renders the peak window hours.
func (v DashboardView) PeakLabel() string {
	if !v.Peak.Observed {
		return "Not enough productive time yet"
	}
	return util.FormatHour(v.Peak.Start) + " - " + util.FormatHour(v.Peak.End)
}
