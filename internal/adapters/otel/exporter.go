package otel

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/config"
)

const (
	serviceName    = "trackit"
	serviceVersion = "1.0.0"
)

// Exporter pushes report metrics to an OTEL Collector. Gauges report the most
// recently exported report on every collection.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	reportsTotal metric.Int64Counter
	trackedHist  metric.Float64Histogram

	mu   sync.RWMutex
	last *domain.Report
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg config.OTel) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	e := &Exporter{provider: provider}
	meter := provider.Meter(serviceName)

	var err error
	e.reportsTotal, err = meter.Int64Counter(
		"trackit_reports_total",
		metric.WithDescription("Number of generated reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	e.trackedHist, err = meter.Float64Histogram(
		"trackit_tracked_seconds",
		metric.WithDescription("Total tracked time per report"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tracked time histogram: %w", err)
	}

	gauges := []struct {
		name, desc, unit string
		value            func(r *domain.Report) float64
	}{
		{"trackit_productivity_score", "Weighted productivity score", "1", func(r *domain.Report) float64 { return float64(r.ProductivityScore) }},
		{"trackit_focus_score", "Share of sessions longer than five minutes", "%", func(r *domain.Report) float64 { return float64(r.FocusScore) }},
		{"trackit_work_percentage", "Share of tracked time spent on work apps in work hours", "%", func(r *domain.Report) float64 { return float64(r.WorkLife.WorkPercentage) }},
		{"trackit_switching_rate", "Sessions started per tracked hour", "{session}/h", func(r *domain.Report) float64 { return float64(r.SwitchingRate) }},
		{"trackit_breaks", "Significant breaks between sessions", "{break}", func(r *domain.Report) float64 { return float64(r.Breaks.Count) }},
	}
	for _, g := range gauges {
		value := g.value
		_, err := meter.Float64ObservableGauge(g.name,
			metric.WithDescription(g.desc),
			metric.WithUnit(g.unit),
			metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
				if r := e.latest(); r != nil {
					o.Observe(value(r))
				}
				return nil
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("creating %s gauge: %w", g.name, err)
		}
	}

	_, err = meter.Float64ObservableGauge("trackit_app_seconds",
		metric.WithDescription("Tracked time per application"),
		metric.WithUnit("s"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			r := e.latest()
			if r == nil {
				return nil
			}
			for _, a := range r.AppUsage {
				o.Observe(a.Seconds, metric.WithAttributes(attribute.String("app", a.Label)))
			}
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating app time gauge: %w", err)
	}

	return e, nil
}

func (e *Exporter) latest() *domain.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Export records a generated report.
func (e *Exporter) Export(ctx context.Context, r *domain.Report) error {
	e.mu.Lock()
	e.last = r
	e.mu.Unlock()

	opt := metric.WithAttributes(attribute.String("timezone", r.Timezone))
	e.reportsTotal.Add(ctx, 1, opt)
	e.trackedHist.Record(ctx, r.Summary.TotalSeconds, opt)
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
