package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/components"
	"github.com/aryan-gupta7/track-it-v1/internal/pkg/tui/theme"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print a usage report",
	Long: `Load the activity data, compute every metric and print the report.

Examples:
  trackit analyze                        # Report for activity_data.json
  trackit analyze -d ~/usage.json.gz     # Report for a compressed file
  trackit analyze --timezone Asia/Tokyo  # Bucket hours in Tokyo time
  trackit analyze --json                 # Full report as JSON`,
	RunE: runAnalyze,
}

var (
	analyzeJSON bool
	analyzeTop  int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full report as JSON")
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 10, "Number of apps to list")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{exporters: true})
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Service.Report(cmd.Context())
	if err != nil {
		return err
	}

	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printReport(cmd.OutOrStdout(), report, analyzeTop)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func printReport(w io.Writer, r *domain.Report, top int) {
	s := theme.Default()
	label := func(l string) string { return s.Muted.Render(fmt.Sprintf("  %-18s", l)) }
	section := func(title string) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+s.Subtitle.Render(title))
		fmt.Fprintln(w, "  "+s.Muted.Render(strings.Repeat("-", len(title))))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+s.Bold.Render("trackit Report"))
	fmt.Fprintln(w, "  "+s.Muted.Render(fmt.Sprintf("Generated %s (%s)", util.FormatDateTime(r.GeneratedAt), r.Timezone)))

	section("Scores")
	fmt.Fprintln(w, label("Productivity:")+s.Highlighted.Render(fmt.Sprintf("%d/100", r.ProductivityScore)))
	fmt.Fprintln(w, label("Focus:")+s.Highlighted.Render(fmt.Sprintf("%d/100", r.FocusScore)))
	fmt.Fprintln(w, label("Switching rate:")+fmt.Sprintf("%d/hr", r.SwitchingRate))

	section("Summary")
	fmt.Fprintln(w, label("Total time:")+r.Summary.TotalTime)
	mostUsed := "None"
	if r.Summary.MostUsedApp != "" {
		mostUsed = fmt.Sprintf("%s (%s)", domain.DisplayName(r.Summary.MostUsedApp), r.Summary.MostUsedTime)
	}
	fmt.Fprintln(w, label("Most used:")+mostUsed)
	peak := "No activity"
	if r.PeakWindow.Observed {
		peak = fmt.Sprintf("%s - %s", util.FormatHour(r.PeakWindow.Start), util.FormatHour(r.PeakWindow.End))
	}
	fmt.Fprintln(w, label("Peak hours:")+peak)

	section("Work-Life Balance")
	fmt.Fprintln(w, label("Status:")+s.Highlighted.Render(r.WorkLife.Status))
	fmt.Fprintln(w, label("Work:")+fmt.Sprintf("%s (%s)", util.FormatPercentage(float64(r.WorkLife.WorkPercentage)), r.WorkLife.WorkTime))
	fmt.Fprintln(w, label("Personal:")+fmt.Sprintf("%s (%s)", util.FormatPercentage(float64(r.WorkLife.PersonalPercentage)), r.WorkLife.PersonalTime))
	fmt.Fprintln(w, "  "+components.Split(40, float64(r.WorkLife.WorkPercentage), s.BarWork, s.BarPersonal))
	fmt.Fprintln(w, "  "+s.Body.Render(r.WorkLife.Message))

	section("Breaks")
	fmt.Fprintln(w, "  "+r.Breaks.Message)

	section("Hourly Usage")
	fmt.Fprintln(w, "  "+s.Highlighted.Render(components.Sparkline(r.HourlyUsage[:])))
	fmt.Fprintln(w, "  "+s.Muted.Render("0     6     12    18   23"))

	if len(r.AppUsage) > 0 {
		section("Top Apps")
		bar := components.Bar{Width: 20, Filled: s.Highlighted, Empty: s.BarEmpty}
		for i, u := range r.AppUsage {
			if top > 0 && i >= top {
				fmt.Fprintln(w, "  "+s.Muted.Render(fmt.Sprintf("... and %d more", len(r.AppUsage)-top)))
				break
			}
			fmt.Fprintf(w, "  %-24s %10s %6.1f%%  %s\n", truncate(u.Label, 24), u.Formatted, u.Share, bar.View(u.Share))
		}
	}

	if len(r.Insights) > 0 {
		section("Insights")
		for _, in := range r.Insights {
			fmt.Fprintln(w, "  "+lipgloss.JoinHorizontal(lipgloss.Top, s.Bold.Render(in.Title+": "), s.Body.Render(in.Message)))
		}
	}

	if n := len(r.DurationMismatches); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+s.Warning.Render(fmt.Sprintf("%d session(s) had a duration that disagreed with their timestamps", n)))
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
