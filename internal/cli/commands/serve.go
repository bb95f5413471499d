package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/okian/standings/internal/adapters/http/web"
	"github.com/okian/standings/internal/adapters/source"
	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/config"
	"github.com/okian/standings/internal/render"
	"github.com/okian/standings/pkg/logger"
)

// HTTP server timeouts. There is no write timeout: /updates is a long-lived stream.
const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live leaderboard dashboard",
		Long: `Start the dashboard web server.

The snapshot is fetched once at start and then on every refresh interval
while at least one dashboard is open. Closing the last dashboard pauses
refreshing until one is opened again.`,
		Example: `  # Serve a local snapshot and refresh when it changes
  standings serve --source docs/data.json --watch

  # Poll a published snapshot every 10 seconds
  standings serve --source https://example.org/data.json --refresh-interval 10s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, ConfigFromContext(cmd.Context()))
		},
	}

	cmd.Flags().String("addr", "", "HTTP listen address (default :9080)")
	cmd.Flags().Duration("refresh-interval", 0, "Period between refreshes while visible (default 30s)")
	cmd.Flags().Int("chart-width", 0, "Chart surface width in pixels")
	cmd.Flags().Int("chart-height", 0, "Chart surface height in pixels")
	cmd.Flags().Bool("watch", false, "Refresh as soon as a local snapshot file changes")
	cmd.Flags().Bool("show-down-trend", false, "Show a down arrow when a team's latest submission scored lower")
	cmd.Flags().Int("feed-limit", 0, "Activity feed length")
	cmd.Flags().Int("achievement-limit", 0, "Custom achievements list length")
	cmd.Flags().Int("leaderboard-max-limit", 0, "Upper bound for /api/leaderboard?limit")

	return cmd
}

// NewDashboard builds a dashboard from cfg.
func NewDashboard(cfg *config.Config, log logger.Logger) (*service.Dashboard, error) {
	fetcher, err := source.NewFetcher(cfg.Source, source.WithTimeout(cfg.FetchTimeout))
	if err != nil {
		return nil, err
	}

	return service.New(
		service.WithFetcher(fetcher),
		service.WithLogger(log),
		service.WithInterval(cfg.RefreshInterval),
		service.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		service.WithRenderOptions(
			render.WithLocation(cfg.Location()),
			render.WithDownTrend(cfg.ShowDownTrend),
			render.WithFeedLimit(cfg.FeedLimit),
			render.WithAchievementLimit(cfg.AchievementLimit),
		),
	), nil
}

// Serve runs the dashboard and its web server until ctx is done.
func Serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("serve")

	dash, err := NewDashboard(cfg, logger.Named("dashboard"))
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	if err := dash.Start(egctx); err != nil {
		return fmt.Errorf("start dashboard: %w", err)
	}
	defer dash.Stop()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: web.NewServer(dash,
			web.WithMaxLimit(cfg.LeaderboardMaxLimit),
			web.WithLogger(logger.Named("web")),
		).Routes(egctx),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	if cfg.Watch {
		if source.IsURL(cfg.Source) {
			log.Warn(ctx, "watch ignored for remote source", logger.String("source", cfg.Source))
		} else {
			eg.Go(func() error {
				return source.Watch(egctx, cfg.Source, dash.Scheduler().RefreshNow)
			})
		}
	}

	eg.Go(func() error {
		log.Info(egctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("source", cfg.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info(shutdownCtx, "shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	err = eg.Wait()
	log.Info(context.Background(), "server stopped")
	return err
}
