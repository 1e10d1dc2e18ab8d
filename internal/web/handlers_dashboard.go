package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/web/templates"
)

// handleDashboard renders the whole page or, on failure, only the error panel.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	report, err := s.reporter.Report(ctx)
	if err != nil {
		s.logger.Error("failed to build report", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
		_ = templates.ErrorPage(err.Error()).Render(ctx, w)
		return
	}
	_ = templates.Dashboard(templates.NewDashboardView(report, s.refresh)).Render(ctx, w)
}
