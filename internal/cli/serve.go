package cli

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/adapters/sampler"
	"github.com/aryan-gupta7/track-it-v1/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the local web dashboard server.

Every page load and API call reads the activity data again, so the dashboard
follows a running tracker. Connected browsers also receive a fresh report
over a websocket every refresh interval.

Examples:
  trackit serve              # Start on default port 8080
  trackit serve --port 3000  # Start on port 3000
  trackit serve --open       # Start and open the browser`,
	RunE: runServe,
}

var (
	servePort int
	serveOpen bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from TRACKIT_SERVER_PORT)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the dashboard in the default browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd, appOptions{exporters: true})
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	var metrics http.Handler
	if app.Recorder != nil {
		metrics = app.Recorder.Handler()
	}

	server := web.NewServer(app.Service, web.Options{
		Port:            cfg.Server.Port,
		RefreshInterval: cfg.Server.RefreshInterval,
		Metrics:         metrics,
		Host:            sampler.NewHostSampler(),
		Logger:          app.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard at %s (source: %s)\n", url, app.Source.Describe())
	if serveOpen {
		if err := openBrowser(url); err != nil {
			app.Logger.Warn("failed to open browser", zap.Error(err))
		}
	}

	return server.Start(cmd.Context())
}

// openBrowser launches the platform's URL handler without waiting for it.
func openBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	return c.Start()
}
