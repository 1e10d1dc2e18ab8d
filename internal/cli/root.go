package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trackit",
	Short: "Application usage tracker and analytics",
	Long: `trackit records which application is in the foreground and turns the
recorded sessions into productivity, focus and work-life metrics.

Reports are available as a web dashboard, a terminal UI, or plain CLI output.
Configuration is read from TRACKIT_* environment variables; run
"trackit config" to list them. Flags override the environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Flags shared by every command
var (
	flagDataFile string
	flagDataURL  string
	flagSource   string
	flagDBPath   string
	flagTimezone string
	flagStrict   bool
	flagLogLevel string
)

// Execute runs the root command. Interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDataFile, "data", "d", "", "Activity data file (.json or .json.gz)")
	pf.StringVar(&flagDataURL, "url", "", "Fetch activity data from this URL")
	pf.StringVarP(&flagSource, "source", "s", "", "Activity source: file, url or db")
	pf.StringVar(&flagDBPath, "db", "", "Local database file")
	pf.StringVar(&flagTimezone, "timezone", "", "Analysis time zone (IANA name or Local)")
	pf.BoolVar(&flagStrict, "strict", false, "Fail when a session duration disagrees with its timestamps")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}
