package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/util"
)

var dayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// report loads a fresh report or writes a 502 JSON error.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	report, err := s.reporter.Report(r.Context())
	if err != nil {
		s.logger.Error("failed to build report", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "Error loading activity data",
			"details": err.Error(),
		})
		return nil, false
	}
	return report, true
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAPIApps(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Apps)
}

func (s *Server) handleAPISystem(w http.ResponseWriter, r *http.Request) {
	if s.host == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "host sampling disabled"})
		return
	}
	snap, err := s.host.Snapshot(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAPIChartUsage(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}

	labels := make([]string, len(report.AppUsage))
	seconds := make([]float64, len(report.AppUsage))
	formatted := make([]string, len(report.AppUsage))
	shares := make([]float64, len(report.AppUsage))
	for i, a := range report.AppUsage {
		labels[i] = a.Label
		seconds[i] = a.Seconds
		formatted[i] = a.Formatted
		shares[i] = a.Share
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"labels":    labels,
		"seconds":   seconds,
		"formatted": formatted,
		"shares":    shares,
	})
}

func (s *Server) handleAPIChartHourly(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}

	labels := make([]string, 24)
	hours := make([]float64, 24)
	for h, seconds := range report.HourlyUsage {
		labels[h] = util.FormatHour(h)
		hours[h] = seconds / 3600
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":  labels,
		"hours":   hours,
		"seconds": report.HourlyUsage,
	})
}

func (s *Server) handleAPIChartWeekly(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"labels": dayLabels,
		"hours":  report.WeeklyUsage,
	})
}

func (s *Server) handleAPIChartResources(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}

	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		R float64 `json:"r"`
	}
	type dataset struct {
		Label string  `json:"label"`
		Data  []point `json:"data"`
	}
	datasets := make([]dataset, len(report.Resources))
	for i, res := range report.Resources {
		datasets[i] = dataset{Label: res.Label, Data: []point{{X: res.CPU, Y: res.Memory, R: res.Minutes}}}
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": datasets})
}

func (s *Server) handleAPIChartTimeline(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Timeline)
}
