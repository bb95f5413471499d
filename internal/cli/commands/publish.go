package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/standings/internal/adapters/source"
	"github.com/okian/standings/internal/publish"
	"github.com/okian/standings/pkg/logger"
)

// ErrRemoteOutput is returned when publish would have to write to a URL.
var ErrRemoteOutput = errors.New("publish needs a local output file")

// PublishOptions holds options for the publish command.
type PublishOptions struct {
	Results string
	Output  string
}

// NewPublishCommand creates the publish command.
func NewPublishCommand() *cobra.Command {
	opts := &PublishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Merge one submission's results into the snapshot file",
		Long: `Read a graded submission results file and fold it into the snapshot
document the dashboard serves: team totals, milestone completions, the
submission history and the activity timeline.`,
		Example: `  standings publish --results results.json --output docs/data.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			output := opts.Output
			if output == "" {
				output = cfg.Source
			}
			if source.IsURL(output) {
				return fmt.Errorf("%w: %s", ErrRemoteOutput, output)
			}

			if err := publish.UpdateFile(opts.Results, output, time.Now()); err != nil {
				return err
			}
			logger.Named("publish").Info(cmd.Context(), "snapshot updated",
				logger.String("results", opts.Results), logger.String("output", output))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Results, "results", "r", "", "Submission results JSON file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Snapshot file to update (default: the configured source)")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}
