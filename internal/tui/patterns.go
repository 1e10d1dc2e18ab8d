package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/components"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func peakIndex(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func renderHourly(hourly [24]float64, styles *theme.Styles) string {
	values := hourly[:]
	axis := "0     6     12    18   23"
	peak := peakIndex(values)
	caption := "No activity recorded"
	if values[peak] > 0 {
		caption = fmt.Sprintf("Peak %s (%s)", util.FormatHour(peak), util.FormatDuration(values[peak]))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render("Hourly Usage"),
		styles.Highlighted.Render(components.Sparkline(values)),
		styles.Muted.Render(axis),
		styles.Body.Render(caption),
	)
}

func renderWeekly(weekly [7]float64, styles *theme.Styles) string {
	maxHours := 0.0
	for _, h := range weekly {
		maxHours = max(maxHours, h)
	}

	lines := []string{styles.Subtitle.Render("Weekly Usage")}
	bar := components.Bar{Width: 30, Filled: styles.Highlighted, Empty: styles.BarEmpty}
	for i, h := range weekly {
		share := 0.0
		if maxHours > 0 {
			share = h / maxHours * 100
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", styles.Body.Render(weekdays[i]), bar.View(share), styles.Muted.Render(fmt.Sprintf("%.1fh", h))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderResources(resources []domain.ResourceUsage, styles *theme.Styles) string {
	lines := []string{styles.Subtitle.Render("Resource Usage")}
	if len(resources) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, styles.Muted.Render("No resource samples."))...)
	}
	lines = append(lines, styles.Bold.Render(fmt.Sprintf("%-24s %7s %7s", "App", "CPU", "Memory")))
	for _, r := range resources {
		lines = append(lines, styles.Body.Render(fmt.Sprintf("%-24s %6.1f%% %6.1f%%", truncate(r.Label, 24), r.CPU, r.Memory)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPatterns(r *domain.Report, styles *theme.Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHourly(r.HourlyUsage, styles),
		"",
		renderWeekly(r.WeeklyUsage, styles),
		"",
		renderResources(r.Resources, styles),
		"",
		styles.Muted.Render("Times shown in "+strings.TrimSpace(r.Timezone)),
	)
}
