package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored report snapshots",
	Long: `List, inspect, record and prune report snapshots kept in the database.

Snapshots are recorded automatically when TRACKIT_HISTORY=true, or on demand
with "trackit history record".

Examples:
  trackit history                       # Most recent snapshots
  trackit history record                # Store the current report
  trackit history show <id>             # Print a stored report as JSON
  trackit history prune --before 2024-01-01`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Generate a report and store it",
	RunE:  runHistoryRecord,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots generated before a date",
	RunE:  runHistoryPrune,
}

var (
	historyLimit  int
	historyBefore string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyRecordCmd, historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of snapshots to list")
	historyPruneCmd.Flags().StringVar(&historyBefore, "before", "", "Cutoff as YYYY-MM-DD or RFC 3339 (required)")
	_ = historyPruneCmd.MarkFlagRequired("before")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{database: true})
	if err != nil {
		return err
	}
	defer app.Close()

	snapshots, err := app.Repos.Snapshots.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots stored")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %5s  %5s  %5s  %5s  %s\n", "ID", "GENERATED", "PROD", "FOCUS", "WORK", "APPS", "TOTAL")
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-36s  %-20s  %5d  %5d  %4d%%  %5d  %s\n",
			s.ID, util.FormatDateTime(s.GeneratedAt), s.ProductivityScore, s.FocusScore,
			s.WorkPercentage, s.AppCount, util.FormatDuration(s.TotalSeconds))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{database: true})
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Repos.Snapshots.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("snapshot %q not found", args[0])
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func runHistoryRecord(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{database: true})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	report, err := app.Service.Report(ctx)
	if err != nil {
		return err
	}
	id, err := app.Repos.Snapshots.Save(ctx, report)
	if err != nil {
		return err
	}
	if err := app.DB.Sync(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to sync snapshot to remote: %v\n", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded snapshot %s\n", id)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cutoff, err := parseCutoff(historyBefore)
	if err != nil {
		return err
	}

	app, err := newApp(cmd, appOptions{database: true})
	if err != nil {
		return err
	}
	defer app.Close()

	n, err := app.Repos.Snapshots.DeleteBefore(cmd.Context(), cutoff)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d snapshots\n", n)
	return nil
}

// parseCutoff accepts a date in the local zone or an RFC 3339 instant.
func parseCutoff(s string) (string, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(time.RFC3339), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC 3339)", s)
	}
	return t.Format(time.RFC3339), nil
}
