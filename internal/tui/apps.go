package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/components"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
)

const pageSize = 15

// Apps lists tracked apps by time, most used first.
type Apps struct {
	apps   []domain.AppUsage
	cursor int
	offset int
	styles *theme.Styles
}

// NewApps creates an empty apps screen.
func NewApps() *Apps {
	return &Apps{styles: theme.Default()}
}

// SetApps replaces the rows and keeps the cursor in range.
func (a *Apps) SetApps(apps []domain.AppUsage) {
	a.apps = apps
	if a.cursor >= len(apps) {
		a.cursor = max(len(apps)-1, 0)
	}
	a.clampOffset()
}

// Cursor returns the selected row index.
func (a *Apps) Cursor() int {
	return a.cursor
}

// Update moves the cursor.
func (a *Apps) Update(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(a.apps)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(len(a.apps)-1, 0)
	}
	a.clampOffset()
}

func (a *Apps) clampOffset() {
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+pageSize {
		a.offset = a.cursor - pageSize + 1
	}
}

// View renders the visible page of the table.
func (a *Apps) View(width int) string {
	if len(a.apps) == 0 {
		return a.styles.Muted.Render("No apps tracked yet.")
	}

	barWidth := 20
	if width > 100 {
		barWidth = 30
	}
	bar := components.Bar{Width: barWidth, Filled: a.styles.Highlighted, Empty: a.styles.BarEmpty}

	header := a.styles.Bold.Render(fmt.Sprintf("  %-28s %10s %7s  %s", "App", "Time", "Share", "Usage"))
	lines := []string{header}

	end := min(a.offset+pageSize, len(a.apps))
	for i := a.offset; i < end; i++ {
		app := a.apps[i]
		row := fmt.Sprintf("%-28s %10s %6.1f%%  ", truncate(app.Label, 28), app.Formatted, app.Share)
		if i == a.cursor {
			lines = append(lines, a.styles.Active.Render("> "+row)+bar.View(app.Share))
			continue
		}
		lines = append(lines, a.styles.Body.Render("  "+row)+bar.View(app.Share))
	}

	footer := a.styles.Muted.Render(fmt.Sprintf("%d-%d of %d  j/k: move", a.offset+1, end, len(a.apps)))
	return lipgloss.JoinVertical(lipgloss.Left, append(lines, "", footer)...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
