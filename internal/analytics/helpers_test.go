package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// monday is 2024-01-15, a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func sess(start time.Time, seconds float64) domain.ProcessedSession {
	end := start.Add(time.Duration(seconds * float64(time.Second)))
	return domain.ProcessedSession{
		StartTime: domain.TimestampFromTime(start),
		EndTime:   domain.TimestampFromTime(end),
		Duration:  seconds,
		Start:     start,
		End:       end,
	}
}

// app builds a processed app whose totals match its sessions.
func app(name string, sessions ...domain.ProcessedSession) domain.ProcessedApp {
	var total float64
	for _, s := range sessions {
		total += s.Duration
	}
	return domain.ProcessedApp{
		AppName:          name,
		TotalTime:        total,
		SessionsCount:    len(sessions),
		AvgSessionLength: AverageSessionLength(total, len(sessions)),
		Sessions:         sessions,
	}
}

func assertFloatNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
