package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar renders a horizontal share bar of fixed width.
type Bar struct {
	Width  int
	Filled lipgloss.Style
	Empty  lipgloss.Style
}

// View renders the bar with share (0-100) of its cells filled.
func (b Bar) View(share float64) string {
	if b.Width <= 0 {
		return ""
	}
	if share < 0 {
		share = 0
	}
	if share > 100 {
		share = 100
	}
	filled := int(share / 100 * float64(b.Width))
	return b.Filled.Render(strings.Repeat("█", filled)) +
		b.Empty.Render(strings.Repeat("░", b.Width-filled))
}

// Split renders a two-colour bar whose left part covers share percent.
func Split(width int, share float64, left, right lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	if share < 0 {
		share = 0
	}
	if share > 100 {
		share = 100
	}
	n := int(share / 100 * float64(width))
	return left.Render(strings.Repeat("█", n)) + right.Render(strings.Repeat("█", width-n))
}
