package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/standings/internal/adapters/source"
	"github.com/okian/standings/internal/simulate"
)

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand() *cobra.Command {
	opts := &simulate.Config{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Publish random submissions into a snapshot file",
		Long: `Play a competition against a local snapshot file. Random teams submit,
pass more milestones over time, and every submission is published exactly
like a graded results file would be. Run it next to "serve --watch" to see
the dashboard move.`,
		Example: `  standings simulate --output docs/data.json --submissions 50 --interval 2s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			if opts.Output == "" {
				opts.Output = cfg.Source
			}
			if source.IsURL(opts.Output) {
				return fmt.Errorf("%w: %s", ErrRemoteOutput, opts.Output)
			}

			stats, err := simulate.Run(cmd.Context(), opts)
			if stats != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d submissions to %s in %s\n",
					stats.Submissions, opts.Output, stats.Duration.Round(time.Millisecond))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Snapshot file to publish into (default: the configured source)")
	cmd.Flags().StringSliceVar(&opts.Teams, "teams", nil, "Competing teams (default: alpha,beta,gamma,delta,epsilon)")
	cmd.Flags().IntVarP(&opts.Submissions, "submissions", "n", 20, "Number of submissions")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Pause between submissions")

	return cmd
}
