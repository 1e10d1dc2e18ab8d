package analytics

import (
	"fmt"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// Insight types, rendered with matching icons.
const (
	InsightProductivity = "productivity"
	InsightFocus        = "focus"
	InsightHealth       = "health"
)

// Insights builds the three insight cards in their fixed order.
func Insights(peak domain.PeakWindow, switchingRate int, breaks domain.BreakSummary) []domain.Insight {
	return []domain.Insight{
		{
			Type:    InsightProductivity,
			Title:   "Peak Productivity Hours",
			Message: fmt.Sprintf("You're most productive between %d:00 and %d:00", peak.Start, peak.End),
		},
		{
			Type:    InsightFocus,
			Title:   "App Switching Pattern",
			Message: fmt.Sprintf("You switch applications approximately %d times per hour", switchingRate),
		},
		{
			Type:    InsightHealth,
			Title:   "Break Analysis",
			Message: breaks.Message,
		},
	}
}
