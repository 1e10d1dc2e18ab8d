package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats seconds as "Xh Ym", or "Ym" under an hour.
// Zero, negative and non-finite input returns "0m".
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0m"
	}
	hours := int64(seconds / 3600)
	minutes := int64(math.Mod(seconds, 3600) / 60)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatHour formats an hour of day as "9:00".
func FormatHour(h int) string {
	return fmt.Sprintf("%d:00", h)
}

// FormatPercentage rounds to a whole percentage.
// Examples: 42.4 -> "42%", 42.5 -> "43%"
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%d%%", RoundHalfUp(v))
}

// RoundHalfUp rounds to the nearest integer with halves going toward positive infinity.
// Non-finite input returns 0.
func RoundHalfUp(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatDateTime formats an instant as "Jan 2, 2006 3:04 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// FormatDateISO formats an instant as an ISO date (2006-01-02).
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseTimeSQLite parses a SQLite datetime or RFC3339 string to time.Time.
// Handles "YYYY-MM-DD HH:MM:SS" (SQLite) and RFC3339 formats.
// Returns zero time if parsing fails.
func ParseTimeSQLite(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
