package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/standings/internal/publish"
	"github.com/okian/standings/pkg/logger"
)

// ErrInvalidConfig is returned for a config Run cannot play.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Run plays config.Submissions submissions into config.Output.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	return run(ctx, config, NewGenerator(teams(config), nil), time.Now)
}

func run(ctx context.Context, config *Config, gen *Generator, now func() time.Time) (*Stats, error) {
	switch {
	case config.Output == "":
		return nil, fmt.Errorf("%w: output is required", ErrInvalidConfig)
	case config.Submissions < 1:
		return nil, fmt.Errorf("%w: submissions must be positive", ErrInvalidConfig)
	case config.Interval < 0:
		return nil, fmt.Errorf("%w: interval must not be negative", ErrInvalidConfig)
	}

	log := logger.Get().Named("simulate")
	stats := &Stats{StartTime: now()}
	log.Info(ctx, "starting simulation",
		logger.String("output", config.Output),
		logger.Int("submissions", config.Submissions),
		logger.Duration("interval", config.Interval))

	var ticker *time.Ticker
	if config.Interval > 0 {
		ticker = time.NewTicker(config.Interval)
		defer ticker.Stop()
	}

	for i := 0; i < config.Submissions; i++ {
		if i > 0 && ticker != nil {
			select {
			case <-ctx.Done():
				return finish(ctx, stats, now), ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return finish(ctx, stats, now), err
		}

		at := now()
		res := gen.Next(at)
		if err := publish.Apply(res, config.Output, at); err != nil {
			return finish(ctx, stats, now), fmt.Errorf("publish submission %d: %w", i+1, err)
		}
		stats.Submissions++
		stats.Completions += len(res.Passed)
		log.Debug(ctx, "submission published",
			logger.String("team", res.Team),
			logger.Int("points", res.TotalPoints),
			logger.Int("passed", len(res.Passed)))
	}

	return finish(ctx, stats, now), nil
}

func finish(ctx context.Context, stats *Stats, now func() time.Time) *Stats {
	stats.EndTime = now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Named("simulate").Info(context.WithoutCancel(ctx), "simulation finished",
		logger.Int("submissions", stats.Submissions),
		logger.Int("completions", stats.Completions),
		logger.Duration("duration", stats.Duration))
	return stats
}

func teams(config *Config) []string {
	if len(config.Teams) > 0 {
		return config.Teams
	}
	return DefaultTeams()
}
