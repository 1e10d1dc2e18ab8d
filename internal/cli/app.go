package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/adapters/elastic"
	"github.com/aryan-gupta7/track-it-v1/internal/adapters/fanout"
	otelexp "github.com/aryan-gupta7/track-it-v1/internal/adapters/otel"
	promexp "github.com/aryan-gupta7/track-it-v1/internal/adapters/prometheus"
	"github.com/aryan-gupta7/track-it-v1/internal/adapters/storage"
	"github.com/aryan-gupta7/track-it-v1/internal/adapters/turso"
	"github.com/aryan-gupta7/track-it-v1/internal/analytics"
	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/config"
	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/logging"
	"github.com/aryan-gupta7/track-it-v1/internal/migrate"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

const closeTimeout = 5 * time.Second

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFile = flagDataFile
	}
	if flags.Changed("url") {
		cfg.DataURL = flagDataURL
		if !flags.Changed("source") {
			cfg.Source = "url"
		}
	}
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
	if flags.Changed("db") {
		cfg.Database.Path = flagDBPath
	}
	if flags.Changed("timezone") {
		cfg.Analysis.Timezone = flagTimezone
	}
	if flags.Changed("strict") {
		cfg.Analysis.Strict = flagStrict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AppContext holds the shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *turso.DB
	Repos    *turso.Repositories
	Source   ports.ActivitySource
	Exporter *fanout.Exporter
	Recorder *promexp.Recorder
	Service  *analytics.Service
}

type appOptions struct {
	// exporters wires the report fan-out (snapshots, Prometheus, OTLP, Elasticsearch).
	exporters bool
	// database opens the database even when the source does not need it.
	database bool
}

// NewAppContext builds the pipeline for cfg.
func NewAppContext(ctx context.Context, cfg *config.Config, opts appOptions) (*AppContext, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	a := &AppContext{Config: cfg, Logger: logger}

	if cfg.Source == "db" || cfg.History || opts.database {
		if err := a.openDB(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	switch cfg.Source {
	case "url":
		a.Source = storage.NewURLSource(cfg.DataURL)
	case "db":
		a.Source = a.Repos.ActivitySource
	default:
		a.Source = storage.NewFileStore(cfg.DataFile)
	}

	var exporter ports.ReportExporter
	if opts.exporters {
		a.Exporter = a.buildExporters(ctx)
		exporter = a.Exporter
	}

	pre, err := newPreprocessor(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Service = analytics.NewService(a.Source, pre, analytics.NewEngine(), exporter, logger)
	return a, nil
}

func newPreprocessor(cfg *config.Config) (*analytics.Preprocessor, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	source, err := analytics.ParseDurationSource(cfg.Analysis.DurationSource)
	if err != nil {
		return nil, err
	}
	return analytics.NewPreprocessor(analytics.PreprocessOptions{
		Location:  loc,
		Source:    source,
		Tolerance: cfg.Analysis.DurationTolerance,
		Strict:    cfg.Analysis.Strict,
	}), nil
}

func (a *AppContext) openDB(ctx context.Context) error {
	db, err := turso.NewDB(a.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db

	if err := db.Sync(); err != nil {
		a.Logger.Warn("failed to sync replica", zap.Error(err))
	}
	if _, err := migrate.New(db.DB, a.Logger).Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.Repos = turso.NewRepositories(db.DB)
	return nil
}

// buildExporters wires every enabled exporter. Adapters that fail to start are
// logged and skipped.
func (a *AppContext) buildExporters(ctx context.Context) *fanout.Exporter {
	cfg := a.Config
	var targets []fanout.Named

	if a.Repos != nil && cfg.History {
		targets = append(targets, fanout.Named{Name: "history", Exporter: fanout.NewSnapshotExporter(a.Repos.Snapshots)})
	}

	if cfg.Prometheus.Enabled {
		a.Recorder = promexp.NewRecorder()
		targets = append(targets, fanout.Named{Name: "prometheus", Exporter: fanout.NewRecorderExporter(a.Recorder)})
	}

	if cfg.OTel.Enabled {
		var target ports.ReportExporter = otelexp.NewNoOpExporter()
		if exp, err := otelexp.NewExporter(ctx, cfg.OTel); err != nil {
			a.Logger.Warn("otel exporter disabled", zap.Error(err))
		} else {
			target = exp
		}
		targets = append(targets, fanout.Named{Name: "otel", Exporter: target})
	}

	if cfg.Elastic.Enabled {
		exp, err := elastic.NewExporter(cfg.Elastic)
		if err != nil {
			a.Logger.Warn("elasticsearch exporter disabled", zap.Error(err))
		} else {
			targets = append(targets, fanout.Named{Name: "elasticsearch", Exporter: exp})
		}
	}

	return fanout.New(cfg.ExportTimeout, a.Logger, targets...)
}

// Close flushes exporters and releases the database.
func (a *AppContext) Close() error {
	var err error
	if a.Exporter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		err = a.Exporter.Close(ctx)
		cancel()
	}
	if a.DB != nil {
		if cerr := a.DB.Close(); err == nil {
			err = cerr
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return err
}

// newApp loads configuration for cmd and builds the app context.
func newApp(cmd *cobra.Command, opts appOptions) (*AppContext, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewAppContext(cmd.Context(), cfg, opts)
}
