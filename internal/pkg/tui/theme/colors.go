package theme

import "github.com/charmbracelet/lipgloss"

// Palette shared with the web dashboard charts.
var (
	Indigo      = lipgloss.Color("#6366F1")
	LightIndigo = lipgloss.Color("#A5B4FC")
	DeepIndigo  = lipgloss.Color("#4338CA")

	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")

	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")

	// Work and personal shares
	Work     = lipgloss.Color("#10B981")
	Personal = lipgloss.Color("#F472B6")
)
