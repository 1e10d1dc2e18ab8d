package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/config"
)

// Exporter indexes one summary document per report.
type Exporter struct {
	client *elasticsearch.Client
	index  string
}

// reportDocument is the indexed shape. Per-session detail is left out.
type reportDocument struct {
	GeneratedAt       string            `json:"generated_at"`
	IndexedAt         string            `json:"indexed_at"`
	Timezone          string            `json:"timezone"`
	ProductivityScore int               `json:"productivity_score"`
	FocusScore        int               `json:"focus_score"`
	WorkPercentage    int               `json:"work_percentage"`
	WorkLifeStatus    string            `json:"work_life_status"`
	SwitchingRate     int               `json:"switching_rate"`
	BreakCount        int               `json:"break_count"`
	PeakStartHour     int               `json:"peak_start_hour"`
	TotalSeconds      float64           `json:"total_seconds"`
	MostUsedApp       string            `json:"most_used_app,omitempty"`
	Apps              []domain.AppUsage `json:"apps"`
}

// NewExporter creates a client for the configured cluster.
func NewExporter(cfg config.Elastic) (*Exporter, error) {
	if !cfg.Enabled || len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("Elasticsearch exporter is disabled or addresses not configured")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Elasticsearch client: %w", err)
	}
	return &Exporter{client: es, index: cfg.Index}, nil
}

func newDocument(r *domain.Report, now time.Time) reportDocument {
	apps := r.AppUsage
	if apps == nil {
		apps = []domain.AppUsage{}
	}
	return reportDocument{
		GeneratedAt:       r.GeneratedAt.Format(time.RFC3339),
		IndexedAt:         now.Format(time.RFC3339),
		Timezone:          r.Timezone,
		ProductivityScore: r.ProductivityScore,
		FocusScore:        r.FocusScore,
		WorkPercentage:    r.WorkLife.WorkPercentage,
		WorkLifeStatus:    r.WorkLife.Status,
		SwitchingRate:     r.SwitchingRate,
		BreakCount:        r.Breaks.Count,
		PeakStartHour:     r.PeakWindow.Start,
		TotalSeconds:      r.Summary.TotalSeconds,
		MostUsedApp:       r.Summary.MostUsedApp,
		Apps:              apps,
	}
}

// Export indexes the report summary.
func (e *Exporter) Export(ctx context.Context, r *domain.Report) error {
	data, err := json.Marshal(newDocument(r, time.Now()))
	if err != nil {
		return fmt.Errorf("encoding report document: %w", err)
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(data),
		e.client.Index.WithContext(ctx),
		e.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("indexing report: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("indexing report to %s: %s", e.index, res.String())
	}
	return nil
}

// Close releases idle connections.
func (e *Exporter) Close(ctx context.Context) error {
	if t, ok := e.client.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// Ping reports whether the cluster answers.
func (e *Exporter) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("pinging Elasticsearch: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
	return nil
}
