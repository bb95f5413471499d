package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/okian/standings/internal/adapters/http/web"
	"github.com/okian/standings/internal/adapters/source"
	"github.com/okian/standings/internal/domain/catalog"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
	"github.com/okian/standings/internal/render"
)

// Output formats of the show command.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Format string
	Limit  int
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current standings",
		Long: `Fetch the snapshot once and print the ranked teams with the
competition summary.`,
		Example: `  # Print the leaderboard as a table
  standings show --source docs/data.json

  # Top three as markdown
  standings show -n 3 -f markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			fetcher, err := source.NewFetcher(cfg.Source, source.WithTimeout(cfg.FetchTimeout))
			if err != nil {
				return err
			}
			snap, err := fetcher.Load(cmd.Context())
			if err != nil {
				return err
			}
			return RenderStandings(cmd.OutOrStdout(), snap, *opts, cfg.Location())
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", FormatTable, "Output format (table|markdown|csv|json)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Show only the top N teams (0 for all)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatMarkdown, FormatCSV, FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

type standingsJSON struct {
	LastUpdate  model.Timestamp `json:"lastUpdate"`
	Summary     stats.Summary   `json:"summary"`
	Leaderboard []web.Entry     `json:"leaderboard"`
}

// RenderStandings writes the ranked snapshot to w in the requested format.
func RenderStandings(w io.Writer, snap *model.Snapshot, opts ShowOptions, loc *time.Location) error {
	if opts.Limit < 0 {
		return fmt.Errorf("limit must not be negative: %d", opts.Limit)
	}
	if loc == nil {
		loc = time.Local
	}

	sum := stats.Summarize(snap)
	ranked := stats.Rank(snap.Teams)
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(standingsJSON{
			LastUpdate:  snap.LastUpdate,
			Summary:     sum,
			Leaderboard: web.Entries(ranked),
		})
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Team", "Points", "Milestones", "Custom", "Last Submission", "Trend"})

	swatches := opts.Format == FormatTable
	for _, e := range web.Entries(ranked) {
		team := e.Team
		if swatches {
			team = swatch(e.Team) + " " + e.Team
		}
		t.AppendRow(table.Row{
			e.Rank,
			team,
			e.TotalPoints,
			e.MilestonesCompleted,
			e.CustomAchievements,
			formatTime(e.LastSubmission, loc, render.DateTimeLayout, render.NoActivityText),
			trendText(e.Trend),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d teams", sum.TotalTeams), sum.TotalPoints, sum.UniqueMilestones, "", "", ""})

	switch opts.Format {
	case FormatTable:
		t.Render()
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	if opts.Format == FormatCSV {
		return nil
	}
	_, _ = fmt.Fprintf(w, "\nLast update: %s\n", formatTime(snap.LastUpdate, loc, render.DateTimeLayout, render.NeverText))
	if sum.Popular != nil {
		_, _ = fmt.Fprintf(w, "Most popular: %s (%d teams)\n", sum.Popular.Name, sum.Popular.Teams)
	} else {
		_, _ = fmt.Fprintln(w, "Most popular: "+render.NoPopularText)
	}
	return nil
}

// swatch is a block in the team's dashboard colour.
func swatch(team string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.TeamColor(team))).Render("■")
}

func formatTime(ts model.Timestamp, loc *time.Location, layout, absent string) string {
	if !ts.Valid() {
		return absent
	}
	return ts.In(loc).Format(layout)
}

func trendText(t stats.Trend) string {
	switch t.Kind {
	case stats.TrendUp:
		return "↑ +" + strconv.Itoa(t.Gain)
	case stats.TrendSame:
		return "→"
	case stats.TrendDown:
		return "↓ " + strconv.Itoa(-t.Gain)
	default:
		return "-"
	}
}
