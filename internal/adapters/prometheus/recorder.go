package prometheus

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
)

// Recorder exposes the latest report as Prometheus gauges on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	productivity  prometheus.Gauge
	focus         prometheus.Gauge
	workShare     *prometheus.GaugeVec
	switchingRate prometheus.Gauge
	breaks        prometheus.Gauge
	appSeconds    *prometheus.GaugeVec
	hourlySeconds   *prometheus.GaugeVec
	reportsTotal  prometheus.Counter
	lastReport    prometheus.Gauge
}

// NewRecorder constructs a recorder and registers its collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		productivity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trackit_productivity_score",
			Help: "Weighted productivity score of the latest report",
		}),
		focus: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trackit_focus_score_percent",
			Help: "Share of sessions longer than five minutes",
		}),
		workShare: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trackit_work_life_percent",
			Help: "Work and personal share of tracked time",
		}, []string{"kind"}),
		switchingRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trackit_switching_rate",
			Help: "Sessions started per tracked hour",
		}),
		breaks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trackit_breaks",
			Help: "Significant breaks between sessions",
		}),
		appSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trackit_app_seconds",
			Help: "Tracked time per application",
		}, []string{"app"}),
		hourlySeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trackit_hourly_usage_seconds",
			Help: "Tracked seconds per hour of day",
		}, []string{"hour"}),
		reportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "trackit_reports_total",
			Help: "Number of reports generated",
		}),
		lastReport: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trackit_last_report_timestamp_seconds",
			Help: "Unix time of the latest report",
		}),
	}
}

// RecordReport replaces every gauge with the report's values.
func (r *Recorder) RecordReport(report *domain.Report) {
	r.productivity.Set(float64(report.ProductivityScore))
	r.focus.Set(float64(report.FocusScore))
	r.workShare.WithLabelValues("work").Set(float64(report.WorkLife.WorkPercentage))
	r.workShare.WithLabelValues("personal").Set(float64(report.WorkLife.PersonalPercentage))
	r.switchingRate.Set(float64(report.SwitchingRate))
	r.breaks.Set(float64(report.Breaks.Count))

	r.appSeconds.Reset()
	for _, a := range report.AppUsage {
		r.appSeconds.WithLabelValues(a.Label).Set(a.Seconds)
	}
	for h, seconds := range report.HourlyUsage {
		r.hourlySeconds.WithLabelValues(strconv.Itoa(h)).Set(seconds)
	}

	r.reportsTotal.Inc()
	if !report.GeneratedAt.IsZero() {
		r.lastReport.Set(float64(report.GeneratedAt.Unix()))
	}
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
