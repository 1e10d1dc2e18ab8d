package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/components"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

// metricCard displays a single headline metric
type metricCard struct {
	title    string
	value    string
	subtitle string
}

func (m metricCard) view(styles *theme.Styles, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Muted.Render(m.title),
		styles.Bold.Render(m.value),
		styles.Muted.Render(m.subtitle),
	)
	return styles.Card.Copy().Width(width).Render(content)
}

func overviewCards(r *domain.Report) []metricCard {
	mostUsed, mostUsedTime := "None", "No data"
	if r.Summary.MostUsedApp != "" {
		mostUsed, mostUsedTime = domain.DisplayName(r.Summary.MostUsedApp), r.Summary.MostUsedTime
	}
	peak := "No activity"
	if r.PeakWindow.Observed {
		peak = fmt.Sprintf("%s - %s", util.FormatHour(r.PeakWindow.Start), util.FormatHour(r.PeakWindow.End))
	}

	return []metricCard{
		{"Productivity", fmt.Sprintf("%d/100", r.ProductivityScore), "Weighted by app category"},
		{"Focus", fmt.Sprintf("%d/100", r.FocusScore), "Average session length"},
		{"Total Time", r.Summary.TotalTime, fmt.Sprintf("%d apps tracked", len(r.Apps))},
		{"Most Used", mostUsed, mostUsedTime},
		{"Peak Hours", peak, "Busiest 3-hour window"},
		{"Switching", fmt.Sprintf("%d/hr", r.SwitchingRate), fmt.Sprintf("%d breaks, %.1f/day", r.Breaks.Count, r.Breaks.PerDay)},
	}
}

// renderCards lays cards out two per row.
func renderCards(cards []metricCard, styles *theme.Styles, totalWidth int) string {
	if totalWidth <= 0 {
		totalWidth = 80
	}
	cardWidth := (totalWidth - 4) / 2
	if cardWidth < 20 {
		cardWidth = 20
	}

	var rows []string
	for i := 0; i < len(cards); i += 2 {
		row := []string{cards[i].view(styles, cardWidth)}
		if i+1 < len(cards) {
			row = append(row, cards[i+1].view(styles, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderWorkLife(w domain.WorkLifeBalance, styles *theme.Styles) string {
	bar := components.Split(40, float64(w.WorkPercentage), styles.BarWork, styles.BarPersonal)
	legend := fmt.Sprintf("%s work %d%% (%s)   %s personal %d%% (%s)",
		styles.BarWork.Render("■"), w.WorkPercentage, w.WorkTime,
		styles.BarPersonal.Render("■"), w.PersonalPercentage, w.PersonalTime)
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render("Work-Life Balance")+"  "+styles.Highlighted.Render(w.Status),
		bar, styles.Body.Render(legend), styles.Muted.Render(w.Message))
}

func insightStyle(styles *theme.Styles, kind string) lipgloss.Style {
	switch kind {
	case "productivity":
		return styles.Success
	case "health":
		return styles.Warning
	default:
		return styles.Info
	}
}

func renderInsights(insights []domain.Insight, styles *theme.Styles) string {
	lines := []string{styles.Subtitle.Render("Insights")}
	if len(insights) == 0 {
		lines = append(lines, styles.Muted.Render("Not enough data for insights yet."))
	}
	for _, in := range insights {
		lines = append(lines, insightStyle(styles, in.Type).Render("● "+in.Title)+"  "+styles.Body.Render(in.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOverview(r *domain.Report, styles *theme.Styles, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderCards(overviewCards(r), styles, width),
		"",
		renderWorkLife(r.WorkLife, styles),
		"",
		renderInsights(r.Insights, styles),
	)
}
