// Package router собирает служебный HTTP-сервер: проверки здоровья и метрики.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthCheck проверка одной зависимости (Redis, Postgres)
type HealthCheck func(ctx context.Context) error

// Config зависимости служебного роутера
type Config struct {
	Logger         *zap.Logger
	MetricsHandler http.Handler
	Checks         map[string]HealthCheck
	CheckTimeout   time.Duration
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// New собирает chi-роутер с /healthz и /metrics
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler(cfg))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func healthHandler(cfg *Config) http.HandlerFunc {
	timeout := cfg.CheckTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK

		names := make([]string, 0, len(cfg.Checks))
		for name := range cfg.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := cfg.Checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				if cfg.Logger != nil {
					cfg.Logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
				}
				continue
			}
			resp.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}
}

// Server служебный HTTP-сервер
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start запускает сервер в отдельной горутине
func (s *Server) Start() {
	go func() {
		s.logger.Info("Ops HTTP server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Ops HTTP server failed", zap.Error(err))
		}
	}()
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
