package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

var exportCmd = &cobra.Command{
	Use:   "export <report|apps>",
	Short: "Export the report or per-app data",
	Long: `Export analysis results for other tools.

  report  the full report as JSON
  apps    one row per processed app, as JSON or CSV

Examples:
  trackit export report -o report.json
  trackit export apps --format csv > apps.csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"report", "apps"},
	RunE:      runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or csv (apps only)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "report" && kind != "apps" {
		return fmt.Errorf("unknown export %q (use report or apps)", kind)
	}
	if exportFormat != "json" && exportFormat != "csv" {
		return fmt.Errorf("unknown format %q (use json or csv)", exportFormat)
	}
	if kind == "report" && exportFormat == "csv" {
		return fmt.Errorf("the report can only be exported as json")
	}

	app, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Service.Report(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	switch {
	case kind == "report":
		return writeJSON(w, report)
	case exportFormat == "csv":
		return writeAppsCSV(w, report.Apps)
	default:
		return writeJSON(w, report.Apps)
	}
}

var appsCSVHeader = []string{
	"app", "total_time", "total_time_formatted", "sessions", "avg_session_length",
	"cpu_usage", "memory_usage", "path",
}

func writeAppsCSV(w io.Writer, apps []domain.ProcessedApp) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(appsCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range apps {
		row := []string{
			a.AppName,
			strconv.FormatFloat(a.TotalTime, 'f', -1, 64),
			util.FormatDuration(a.TotalTime),
			strconv.Itoa(a.SessionsCount),
			strconv.FormatFloat(util.RoundTo(a.AvgSessionLength, 2), 'f', -1, 64),
			strconv.FormatFloat(a.CPUUsage, 'f', -1, 64),
			strconv.FormatFloat(a.MemoryUsage, 'f', -1, 64),
			a.Path,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
