package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/handler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	handler *handler.Handler
	server  *http.Server
	logger  *zap.Logger
}

// NewServer собирает локальный JSON API; /metrics отдает метрики из registry
func NewServer(h *handler.Handler, addr string, registry *prometheus.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &Server{
		handler: h,
		logger:  logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           withRequestContext(mux, NewMetrics(registry), logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler возвращает корневой http.Handler (используется в тестах через httptest)
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
