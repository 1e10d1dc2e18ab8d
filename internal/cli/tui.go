package cli

import (
	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal dashboard",
	Long: `Open an interactive terminal dashboard over the same report as the web UI.

Keys: 1-3 switch screens, r reloads the data, q quits.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Log lines would corrupt the alternate screen.
	cfg.LogLevel = "error"

	app, err := NewAppContext(cmd.Context(), cfg, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	return tui.Run(app.Service)
}
