package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// MinBreakMinutes is the gap length a break must exceed.
const MinBreakMinutes = 5

const messageNoBreaks = "No significant breaks detected"

// BreakGaps returns the whole-minute gaps between consecutive sessions of all apps
// ordered by start. Minutes are truncated toward zero.
func BreakGaps(apps []domain.ProcessedApp) []int {
	var sessions []domain.ProcessedSession
	for _, app := range apps {
		sessions = append(sessions, app.Sessions...)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})

	gaps := make([]int, 0, len(sessions))
	for i := 1; i < len(sessions); i++ {
		gaps = append(gaps, int(sessions[i].Start.Sub(sessions[i-1].End)/time.Minute))
	}
	return gaps
}

// AnalyzeBreaks counts gaps longer than five minutes and averages them.
func AnalyzeBreaks(apps []domain.ProcessedApp) domain.BreakSummary {
	gaps := BreakGaps(apps)

	var count, total int
	for _, g := range gaps {
		if g > MinBreakMinutes {
			count++
			total += g
		}
	}

	summary := domain.BreakSummary{
		Count:      count,
		ActiveDays: activeDays(apps),
	}
	if count == 0 {
		summary.Message = messageNoBreaks
		return summary
	}

	summary.AverageMinutes = float64(total) / float64(count)
	summary.PerDay = float64(count)
	if summary.ActiveDays > 0 {
		summary.PerDay = float64(count) / float64(summary.ActiveDays)
	}
	summary.Message = fmt.Sprintf(
		"Average break duration: %s. You take approximately %d significant breaks per day.",
		util.FormatDuration(summary.AverageMinutes*60), count)
	return summary
}

func activeDays(apps []domain.ProcessedApp) int {
	days := make(map[string]struct{})
	for _, app := range apps {
		for _, s := range app.Sessions {
			days[util.FormatDateISO(s.Start)] = struct{}{}
		}
	}
	return len(days)
}
