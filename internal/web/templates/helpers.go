package templates

import (
	"strconv"
	"time"

	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func formatPercent(n int) string {
	return util.FormatPercentage(float64(n))
}

func formatGenerated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return util.FormatDateTime(t)
}

// barValue clamps the share to the progress range.
func barValue(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return strconv.Itoa(pct)
}

func insightIcon(kind string) string {
	switch kind {
	case "productivity":
		return "⚡"
	case "focus":
		return "🎯"
	case "health":
		return "☕"
	default:
		return "•"
	}
}

func statusClass(status string) string {
	switch status {
	case "Work-Heavy":
		return "status-warn"
	case "Personal-Heavy":
		return "status-info"
	case "No Data":
		return "status-muted"
	default:
		return "status-ok"
	}
}
