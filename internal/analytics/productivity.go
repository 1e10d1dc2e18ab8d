package analytics

import (
	"math"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// LongSessionSeconds is the minimum length of a session that counts as focused.
const LongSessionSeconds = 300

// ProductivityScore weights each session by its app's tier and its start hour, then
// scales the clamped sum by 10. The result is not capped at 100.
func ProductivityScore(apps []domain.ProcessedApp, rules []domain.CategoryRule, weights [24]float64) int {
	var sum float64
	for _, app := range apps {
		mult := domain.ClassifyWith(rules, app.AppName).Multiplier()
		if mult == 0 {
			continue
		}
		for _, s := range app.Sessions {
			sum += s.Hours() * mult * weights[s.Start.Hour()]
		}
	}
	return util.RoundHalfUp(math.Max(0, sum) * 10)
}

// FocusScore is the percentage of sessions longer than five minutes relative to the
// sessions counted in the records. It returns 0 when no sessions were counted.
func FocusScore(apps []domain.ProcessedApp) int {
	var long, total int
	for _, app := range apps {
		total += app.SessionsCount
		for _, s := range app.Sessions {
			if s.Duration > LongSessionSeconds {
				long++
			}
		}
	}
	if total == 0 {
		return 0
	}
	score := util.RoundHalfUp(100 * float64(long) / float64(total))
	if score > 100 {
		return 100
	}
	return score
}

// SwitchingRate is the number of sessions per active hour. It returns 0 when no
// time was recorded.
func SwitchingRate(apps []domain.ProcessedApp) int {
	var sessions int
	var seconds float64
	for _, app := range apps {
		sessions += app.SessionsCount
		seconds += app.TotalTime
	}
	hours := seconds / 3600
	if hours == 0 {
		return 0
	}
	return util.RoundHalfUp(float64(sessions) / hours)
}
