package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/adapters/sampler"
	"github.com/aryan-gupta7/track-it-v1/internal/adapters/storage"
	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
	"github.com/aryan-gupta7/track-it-v1/internal/tracker"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record foreground application usage",
	Long: `Sample the foreground window once per interval and record per-app sessions.

The data is saved after every sample, so the dashboard can read it while the
tracker runs. Existing data is extended, not replaced. Press Ctrl+C to stop;
the open session is closed and saved before exit.

The foreground process id comes from TRACKIT_TRACKER_PROBE_COMMAND
(default: xdotool getactivewindow getwindowpid).

Examples:
  trackit track                    # Record into activity_data.json
  trackit track -d ~/usage.json    # Record into another file
  trackit track --source db        # Record into the database`,
	RunE: runTrack,
}

var trackInterval time.Duration

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().DurationVarP(&trackInterval, "interval", "i", 0, "Sampling interval, e.g. 1s (default from TRACKIT_TRACKER_INTERVAL)")
}

// activityStore picks where tracked data is read from and written to.
func activityStore(app *AppContext) (ports.ActivitySource, ports.ActivitySink, error) {
	switch app.Config.Source {
	case "db":
		return app.Repos.ActivitySource, app.Repos.ActivitySink, nil
	case "url":
		return nil, nil, errors.New("cannot record into a url source; use file or db")
	default:
		store := storage.NewFileStore(app.Config.DataFile)
		return store, store, nil
	}
}

// loadExisting returns the stored activity, or an empty mapping when none exists.
// Malformed data is an error so it is never overwritten.
func loadExisting(ctx context.Context, source ports.ActivitySource) (*domain.RawActivity, error) {
	data, err := source.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return &domain.RawActivity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load existing activity from %s: %w", source.Describe(), err)
	}
	return data, nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	interval := cfg.Tracker.Interval
	if trackInterval > 0 {
		interval = trackInterval
	}

	source, sink, err := activityStore(app)
	if err != nil {
		return err
	}
	initial, err := loadExisting(cmd.Context(), source)
	if err != nil {
		return err
	}

	probe, err := sampler.NewProcessProbe(cfg.Tracker.ProbeCommand, cfg.Tracker.TitleCommand)
	if err != nil {
		return err
	}

	t := tracker.New(probe, sink, initial, tracker.Options{Interval: interval, Logger: app.Logger})
	fmt.Fprintf(cmd.OutOrStdout(), "Tracking into %s. Press Ctrl+C to stop.\n", source.Describe())

	if err := t.Run(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d apps to %s\n", t.Data().Len(), source.Describe())
	return nil
}
