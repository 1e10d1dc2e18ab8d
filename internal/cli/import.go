package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/adapters/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load an activity data file into the database",
	Long: `Read a tracker JSON file (optionally .gz) and store it in the database,
replacing what is there. Use --source db afterwards to analyze it.

Examples:
  trackit import activity_data.json
  trackit import backup.json.gz --db ~/trackit.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{database: true})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	file := storage.NewFileStore(args[0])
	data, err := file.Load(ctx)
	if err != nil {
		return err
	}

	if err := app.Repos.ActivitySink.Save(ctx, data); err != nil {
		return err
	}
	if err := app.DB.Sync(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to sync import to remote: %v\n", err)
	}

	sessions := 0
	for _, entry := range data.Apps {
		sessions += len(entry.Record.Sessions)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d apps (%d sessions) from %s\n", data.Len(), sessions, args[0])
	return nil
}
