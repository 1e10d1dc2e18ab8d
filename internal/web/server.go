package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aryan-gupta7/track-it-v1/internal/domain"
	"github.com/aryan-gupta7/track-it-v1/internal/ports"
)

//go:embed static/*
var staticFiles embed.FS

// Reporter produces a fresh report per call.
type Reporter interface {
	Report(ctx context.Context) (*domain.Report, error)
}

// Options configures the dashboard server. Metrics and Host may be nil.
type Options struct {
	Port            int
	RefreshInterval time.Duration
	Metrics         http.Handler
	Host            ports.HostSampler
	Logger          *zap.Logger
}

type Server struct {
	reporter Reporter
	router   chi.Router
	port     int
	refresh  time.Duration
	metrics  http.Handler
	host     ports.HostSampler
	hub      *Hub
	logger   *zap.Logger
}

func NewServer(reporter Reporter, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	s := &Server{
		reporter: reporter,
		router:   chi.NewRouter(),
		port:     opts.Port,
		refresh:  opts.RefreshInterval,
		metrics:  opts.Metrics,
		host:     opts.Host,
		logger:   opts.Logger,
	}
	s.hub = NewHub(reporter, opts.RefreshInterval, opts.Logger)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Get("/", s.handleDashboard)
	r.Get("/ws/report", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleAPIReport)
		r.Get("/apps", s.handleAPIApps)
		r.Get("/system", s.handleAPISystem)
		r.Get("/charts/usage", s.handleAPIChartUsage)
		r.Get("/charts/hourly", s.handleAPIChartHourly)
		r.Get("/charts/weekly", s.handleAPIChartWeekly)
		r.Get("/charts/resources", s.handleAPIChartResources)
		r.Get("/charts/timeline", s.handleAPIChartTimeline)
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	s.logger.Info("starting server", zap.String("url", fmt.Sprintf("http://localhost:%d", s.port)))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown error", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
