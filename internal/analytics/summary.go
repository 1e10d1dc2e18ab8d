package analytics

import (
	"sort"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// Summary computes total active time and the most used app. On equal totals the
// later app wins.
func Summary(apps []domain.ProcessedApp) domain.QuickSummary {
	var total float64
	best := -1
	for i, app := range apps {
		total += app.TotalTime
		if best < 0 || app.TotalTime >= apps[best].TotalTime {
			best = i
		}
	}

	s := domain.QuickSummary{
		TotalSeconds: total,
		TotalTime:    util.FormatDuration(total),
	}
	if best >= 0 {
		s.MostUsedApp = apps[best].AppName
		s.MostUsedTime = util.FormatDuration(apps[best].TotalTime)
	}
	return s
}

// AppUsageShares lists apps by total time, largest first, with their share of the total.
func AppUsageShares(apps []domain.ProcessedApp) []domain.AppUsage {
	var total float64
	for _, app := range apps {
		total += app.TotalTime
	}

	usage := make([]domain.AppUsage, 0, len(apps))
	for _, app := range apps {
		var share float64
		if total > 0 {
			share = util.RoundTo(100*app.TotalTime/total, 1)
		}
		usage = append(usage, domain.AppUsage{
			AppName:   app.AppName,
			Label:     domain.DisplayName(app.AppName),
			Seconds:   app.TotalTime,
			Formatted: util.FormatDuration(app.TotalTime),
			Share:     share,
		})
	}
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].Seconds > usage[j].Seconds
	})
	return usage
}

// Resources returns one CPU/memory/minutes point per app.
func Resources(apps []domain.ProcessedApp) []domain.ResourceUsage {
	points := make([]domain.ResourceUsage, 0, len(apps))
	for _, app := range apps {
		points = append(points, domain.ResourceUsage{
			AppName: app.AppName,
			Label:   domain.DisplayName(app.AppName),
			CPU:     app.CPUUsage,
			Memory:  app.MemoryUsage,
			Minutes: app.TotalTime / 60,
		})
	}
	return points
}

// BuildTimeline lays every session out per app and records the overall extent.
func BuildTimeline(apps []domain.ProcessedApp) domain.Timeline {
	tl := domain.Timeline{Rows: make([]domain.TimelineRow, 0, len(apps))}
	var first, last time.Time
	for _, app := range apps {
		row := domain.TimelineRow{
			AppName:   app.AppName,
			Label:     domain.DisplayName(app.AppName),
			Intervals: make([]domain.TimelineInterval, 0, len(app.Sessions)),
		}
		for _, s := range app.Sessions {
			row.Intervals = append(row.Intervals, domain.TimelineInterval{
				Start:     s.Start,
				End:       s.End,
				Formatted: util.FormatDuration(s.Duration),
			})
			if first.IsZero() || s.Start.Before(first) {
				first = s.Start
			}
			if last.IsZero() || s.End.After(last) {
				last = s.End
			}
		}
		tl.Rows = append(tl.Rows, row)
	}
	if !first.IsZero() {
		tl.Start = &first
		tl.End = &last
	}
	return tl
}
