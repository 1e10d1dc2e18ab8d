package analytics

import (
	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// PeakWindowHours is the length of the peak productivity window.
const PeakWindowHours = 3

// HourlyUsage adds each session's full duration, in seconds, to the bucket of its
// start hour.
func HourlyUsage(apps []domain.ProcessedApp) [24]float64 {
	var buckets [24]float64
	for _, app := range apps {
		for _, s := range app.Sessions {
			buckets[s.Start.Hour()] += s.Duration
		}
	}
	return buckets
}

// WeeklyUsage adds each session's duration, in hours, to the bucket of its start
// weekday (Sunday = 0).
func WeeklyUsage(apps []domain.ProcessedApp) [7]float64 {
	var buckets [7]float64
	for _, app := range apps {
		for _, s := range app.Sessions {
			buckets[s.Start.Weekday()] += s.Hours()
		}
	}
	return buckets
}

// PeakWindow finds the hour with the most productive-app time and returns the
// three-hour window starting there. Ties go to the earliest hour.
func PeakWindow(apps []domain.ProcessedApp, productive domain.Keywords) domain.PeakWindow {
	var buckets [24]float64
	for _, app := range apps {
		if !productive.Matches(app.AppName) {
			continue
		}
		for _, s := range app.Sessions {
			buckets[s.Start.Hour()] += s.Duration
		}
	}

	peak := 0
	for h := 1; h < len(buckets); h++ {
		if buckets[h] > buckets[peak] {
			peak = h
		}
	}
	return domain.PeakWindow{
		Start:    peak,
		End:      (peak + PeakWindowHours) % 24,
		Observed: buckets[peak] > 0,
	}
}
