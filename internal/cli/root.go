// Package cli provides the command-line interface for standings.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/standings/internal/cli/commands"
	"github.com/okian/standings/internal/config"
	"github.com/okian/standings/pkg/logger"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "standings",
		Short: "standings - live team competition leaderboard",
		Long: `standings serves a live leaderboard for a team competition.

It polls a JSON snapshot of team scores, milestone completions and a
timeline of events, and keeps an open dashboard in sync with it.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}

			cfg, err := config.Load(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags; names match config keys with '-' for '_'.
	rootCmd.PersistentFlags().String(config.ConfigFlag, "", "config file (default: $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("source", "s", "", "Snapshot location: http(s) URL or file path")
	rootCmd.PersistentFlags().Duration("fetch-timeout", 0, "Timeout for one snapshot fetch")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone used to format timestamps")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewPublishCommand())
	rootCmd.AddCommand(commands.NewSimulateCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
