package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/components"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
)

// Reporter produces a fresh report on every call.
type Reporter interface {
	Report(ctx context.Context) (*domain.Report, error)
}

// Screen identifies the current screen
type Screen int

const (
	ScreenOverview Screen = iota
	ScreenApps
	ScreenPatterns
)

var screenLabels = []string{"Overview", "Apps", "Patterns"}

type reportLoadedMsg struct {
	report *domain.Report
}

type reportErrorMsg struct {
	err error
}

// App is the terminal dashboard.
type App struct {
	reporter Reporter
	screen   Screen
	report   *domain.Report
	loading  bool
	err      error
	apps     *Apps
	styles   *theme.Styles
	help     components.HelpBar
	width    int
	height   int
}

// NewApp creates a dashboard that loads its first report on Init.
func NewApp(reporter Reporter) *App {
	help := components.NewHelpBar(screenLabels,
		components.KeyBinding{Key: "tab", Desc: "next"},
		components.KeyBinding{Key: "r", Desc: "reload"},
		components.KeyBinding{Key: "q", Desc: "quit"},
	)
	help.On(int(ScreenApps),
		components.KeyBinding{Key: "j/k", Desc: "move"},
		components.KeyBinding{Key: "g/G", Desc: "top/bottom"},
	)
	return &App{
		reporter: reporter,
		screen:   ScreenOverview,
		loading:  true,
		apps:     NewApps(),
		styles:   theme.Default(),
		help:     help,
	}
}

// Screen returns the current screen.
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.load()
}

func (a *App) load() tea.Cmd {
	return func() tea.Msg {
		report, err := a.reporter.Report(context.Background())
		if err != nil {
			return reportErrorMsg{err}
		}
		return reportLoadedMsg{report}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			a.loading = true
			a.err = nil
			return a, a.load()
		case "1":
			a.screen = ScreenOverview
		case "2":
			a.screen = ScreenApps
		case "3":
			a.screen = ScreenPatterns
		case "tab":
			a.screen = (a.screen + 1) % Screen(len(screenLabels))
		default:
			if a.screen == ScreenApps {
				a.apps.Update(msg)
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case reportLoadedMsg:
		a.loading = false
		a.err = nil
		a.report = msg.report
		a.apps.SetApps(msg.report.AppUsage)

	case reportErrorMsg:
		a.loading = false
		a.err = msg.err
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	sep := a.styles.Muted.Render(strings.Repeat("─", 64))
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(), a.renderNav(), sep, "", a.renderContent(), a.help.View(int(a.screen)))
}

func (a *App) renderContent() string {
	if a.err != nil {
		return a.styles.Error.Render(fmt.Sprintf("Error loading activity data: %v", a.err))
	}
	if a.report == nil {
		return a.styles.Muted.Render("Loading activity data...")
	}

	var content string
	switch a.screen {
	case ScreenApps:
		content = a.apps.View(a.width)
	case ScreenPatterns:
		content = renderPatterns(a.report, a.styles)
	default:
		content = renderOverview(a.report, a.styles, a.width)
	}
	if a.loading {
		content = lipgloss.JoinVertical(lipgloss.Left, a.styles.Muted.Render("Reloading..."), content)
	}
	return content
}

func (a *App) renderHeader() string {
	title := a.styles.Bold.Render("TRACKIT")
	tagline := a.styles.Muted.Render("Usage Analytics")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tagline)
}

func (a *App) renderNav() string {
	items := make([]string, 0, len(screenLabels))
	for i, label := range screenLabels {
		if Screen(i) == a.screen {
			items = append(items, a.styles.Active.Render(label))
			continue
		}
		key := a.styles.Muted.Render(fmt.Sprintf("[%d]", i+1))
		items = append(items, key+" "+a.styles.Inactive.Render(label))
	}
	return strings.Join(items, a.styles.Muted.Render("  /  "))
}

// Run starts the dashboard in the alternate screen and blocks until it exits.
func Run(reporter Reporter) error {
	p := tea.NewProgram(NewApp(reporter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
