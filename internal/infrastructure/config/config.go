package config

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "TRACKIT"

// Database holds libSQL / Turso configuration. An empty URL selects a local file.
type Database struct {
	URL       string `split_words:"true"`
	AuthToken string `split_words:"true"`
	Path      string `split_words:"true"`
	Replica   bool   `split_words:"true" default:"false"`
}

// Analysis controls preprocessing.
type Analysis struct {
	Timezone          string        `split_words:"true" default:"Local"`
	DurationSource    string        `split_words:"true" default:"timestamps"`
	DurationTolerance time.Duration `split_words:"true" default:"2s"`
	Strict            bool          `split_words:"true" default:"false"`
}

// Tracker controls the foreground sampler.
type Tracker struct {
	Interval     time.Duration `split_words:"true" default:"1s"`
	ProbeCommand string        `split_words:"true" default:"xdotool getactivewindow getwindowpid"`
	TitleCommand string        `split_words:"true" default:"xdotool getactivewindow getwindowname"`
}

// Server controls the dashboard.
type Server struct {
	Port            int           `split_words:"true" default:"8080"`
	RefreshInterval time.Duration `split_words:"true" default:"30s"`
}

// OTel controls the OTLP metrics exporter.
type OTel struct {
	Endpoint string `split_words:"true"`
	Enabled  bool   `split_words:"true" default:"false"`
	Insecure bool   `split_words:"true" default:"false"`
}

// Elastic controls the Elasticsearch report exporter.
type Elastic struct {
	Addresses []string `split_words:"true"`
	Username  string   `split_words:"true"`
	Password  string   `split_words:"true"`
	APIKey    string   `split_words:"true"`
	Index     string   `split_words:"true" default:"trackit-reports"`
	Enabled   bool     `split_words:"true" default:"false"`
}

// Prometheus controls the /metrics endpoint.
type Prometheus struct {
	Enabled bool `split_words:"true" default:"true"`
}

// Config is the full application configuration.
type Config struct {
	DataFile      string        `split_words:"true" default:"activity_data.json"`
	DataURL       string        `split_words:"true"`
	Source        string        `split_words:"true" default:"file"`
	LogLevel      string        `split_words:"true" default:"info"`
	LogFormat     string        `split_words:"true" default:"console"`
	ExportTimeout time.Duration `split_words:"true" default:"5s"`
	History       bool          `split_words:"true" default:"false"`

	// Analysis fields are read without a sub-prefix, e.g. TRACKIT_TIMEZONE.
	Analysis

	Database   Database   `envconfig:"DATABASE"`
	Tracker    Tracker    `envconfig:"TRACKER"`
	Server     Server     `envconfig:"SERVER"`
	OTel       OTel       `envconfig:"OTEL"`
	Elastic    Elastic    `envconfig:"ELASTIC"`
	Prometheus Prometheus `envconfig:"PROMETHEUS"`
}

// Load reads configuration from TRACKIT_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Source {
	case "file", "url", "db":
	default:
		return fmt.Errorf("invalid source %q (use file, url or db)", c.Source)
	}
	if c.Source == "url" && c.DataURL == "" {
		return fmt.Errorf("source url requires %s_DATA_URL", Prefix)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Database.Replica && c.Database.URL == "" {
		return fmt.Errorf("embedded replica requires %s_DATABASE_URL", Prefix)
	}
	return nil
}

// Location resolves the analysis time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Analysis.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Analysis.Timezone, err)
	}
	return loc, nil
}

// Usage writes a table of the recognized environment variables to w.
func Usage(w io.Writer) error {
	var cfg Config
	return envconfig.Usagef(Prefix, &cfg, w, envconfig.DefaultTableFormat)
}
