// Package web serves the dashboard page, its live update stream and a small
// read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/adapters/http/swagger"
	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
	"github.com/okian/standings/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the dashboard implementation.
type Dependencies interface {
	Page() *display.Page
	Snapshot() *model.Snapshot
	Summary() stats.Summary
	Ranked() []model.Team
	Status() service.Status

	// Viewer presence drives refresh visibility.
	ViewerJoined() int
	ViewerLeft() int
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	pageHandler        *PageHandler
	updatesHandler     *UpdatesHandler
	summaryHandler     *SummaryHandler
	leaderboardHandler *LeaderboardHandler
	healthHandler      *HealthHandler
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxLimit int
	logger   logger.Logger
}

// WithMaxLimit caps /api/leaderboard?limit=N.
func WithMaxLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithLogger sets the logger used by long-lived handlers.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{maxLimit: 100, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		pageHandler:        NewPageHandler(deps),
		updatesHandler:     NewUpdatesHandler(deps, cfg.logger),
		summaryHandler:     NewSummaryHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, cfg.maxLimit),
		healthHandler:      NewHealthHandler(),
	}
}

// Routes returns the router with every route attached.
func (s *Server) Routes(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", MetricsMiddleware(s.pageHandler.HandlePage, "page"))
	r.Get("/updates", MetricsMiddleware(s.updatesHandler.HandleUpdates, "updates"))
	r.Get("/api/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	r.Get("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Handle("/static/*", staticHandler())
	swagger.Register(ctx, r)

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
