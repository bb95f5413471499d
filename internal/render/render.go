// Package render writes the dashboard's derived values into page regions.
// Every region is cleared and rebuilt in full on each call.
package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/domain/catalog"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
)

// Time layouts.
const (
	DateTimeLayout = "Jan 2, 2006, 3:04:05 PM"
	TimeLayout     = "3:04:05 PM"
	DateLayout     = "Jan 2, 2006"
)

// Fixed region texts.
const (
	NeverText       = "Never"
	FailureText     = "Failed to load data"
	NoActivityText  = "No activity"
	NoPopularText   = "None yet"
	NotCompleted    = "Not yet completed"
	placeholderCell = "-"
)

// Target is the page the renderer writes to.
type Target interface {
	Has(id string) bool
	SetText(id, text string) error
	SetHTML(id, html string) error
}

// Renderer turns a snapshot and its derived values into region content.
type Renderer struct {
	target           Target
	loc              *time.Location
	showDown         bool
	feedLimit        int
	achievementLimit int
}

// New returns a renderer writing to target.
func New(target Target, opts ...Option) *Renderer {
	r := &Renderer{
		target:           target,
		loc:              time.Local,
		feedLimit:        DefaultFeedLimit,
		achievementLimit: DefaultAchievementLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render rebuilds every region from one consistent snapshot.
func (r *Renderer) Render(_ context.Context, snap *model.Snapshot, sum stats.Summary, ranked []model.Team) error {
	if snap == nil {
		snap = model.Empty()
	}
	return errors.Join(
		r.LastUpdate(snap.LastUpdate),
		r.Stats(sum),
		r.Leaderboard(ranked),
		r.ActivityFeed(snap.Timeline),
		r.MilestoneGrid(snap.MilestoneStats),
		r.CustomAchievements(snap.CustomMilestones.Items),
	)
}

// RenderFailure marks the last-update region and leaves every other region as it was.
func (r *Renderer) RenderFailure() error {
	return r.target.SetText(display.LastUpdate, FailureText)
}

// LastUpdate shows when the snapshot was produced.
func (r *Renderer) LastUpdate(ts model.Timestamp) error {
	return r.target.SetText(display.LastUpdate, r.format(ts, DateTimeLayout, NeverText))
}

// Stats fills the four headline regions.
func (r *Renderer) Stats(sum stats.Summary) error {
	popular := NoPopularText
	if sum.Popular != nil {
		popular = fmt.Sprintf("%s (%d teams)", sum.Popular.Name, sum.Popular.Teams)
	}
	return errors.Join(
		r.target.SetText(display.TotalTeams, strconv.Itoa(sum.TotalTeams)),
		r.target.SetText(display.TotalMilestones, strconv.Itoa(sum.UniqueMilestones)),
		r.target.SetText(display.TotalPoints, strconv.Itoa(sum.TotalPoints)),
		r.target.SetText(display.PopularMilestone, popular),
	)
}

type rowView struct {
	Tier         string
	Rank         int
	Name         string
	Points       int
	Milestones   int
	Custom       string
	LastActivity string
	Trend        template.HTML
}

var tiers = []string{"gold", "silver", "bronze"}

// Leaderboard writes one row per team in the given order.
func (r *Renderer) Leaderboard(ranked []model.Team) error {
	rows := make([]rowView, 0, len(ranked))
	for i, team := range ranked {
		row := rowView{
			Rank:         i + 1,
			Name:         team.Name,
			Points:       team.Record.TotalPoints,
			Milestones:   len(team.Record.CompletedMilestones),
			Custom:       placeholderCell,
			LastActivity: r.format(team.Record.LastSubmission, DateTimeLayout, NoActivityText),
			Trend:        r.trend(stats.TrendOf(team.Record)),
		}
		if i < len(tiers) {
			row.Tier = tiers[i]
		}
		if n := len(team.Record.CustomMilestones); n > 0 {
			row.Custom = "🏆 " + strconv.Itoa(n)
		}
		rows = append(rows, row)
	}
	return r.execute(display.RankingsBody, "leaderboard", rows)
}

func (r *Renderer) trend(t stats.Trend) template.HTML {
	switch t.Kind {
	case stats.TrendUp:
		return template.HTML(fmt.Sprintf(`<span class="trend-up">↑ +%d</span>`, t.Gain)) //nolint:gosec // integer only
	case stats.TrendSame:
		return `<span class="trend-same">→</span>`
	case stats.TrendDown:
		if !r.showDown {
			return ""
		}
		return template.HTML(fmt.Sprintf(`<span class="trend-down">↓ %d</span>`, -t.Gain)) //nolint:gosec // integer only
	default:
		return `<span class="trend-same">-</span>`
	}
}

type feedView struct {
	Class  string
	Time   string
	Team   string
	Event  string
	Points string
}

// ActivityFeed lists the newest timeline entries. The timeline is already newest first.
func (r *Renderer) ActivityFeed(timeline []model.Event) error {
	if len(timeline) > r.feedLimit {
		timeline = timeline[:r.feedLimit]
	}
	items := make([]feedView, 0, len(timeline))
	for _, ev := range timeline {
		item := feedView{
			Class: "activity-item",
			Time:  r.format(ev.Timestamp, TimeLayout, ""),
			Team:  ev.Team,
			Event: ev.Event,
		}
		if ev.IsCustom() {
			item.Class += " custom"
		}
		if ev.Points != nil && *ev.Points != 0 {
			item.Points = fmt.Sprintf("(+%d pts)", *ev.Points)
		}
		items = append(items, item)
	}
	return r.execute(display.ActivityFeed, "feed", items)
}

type gridView struct {
	Name      string
	Points    int
	Completed bool
	Teams     string
}

// MilestoneGrid shows every catalog milestone, overlaid with snapshot data.
func (r *Renderer) MilestoneGrid(milestones model.Milestones) error {
	entries := catalog.Milestones()
	items := make([]gridView, 0, len(entries))
	for _, entry := range entries {
		item := gridView{Name: entry.Name, Points: entry.Points, Teams: NotCompleted}
		if rec, ok := milestones.Get(entry.ID); ok {
			if rec.Name != "" {
				item.Name = rec.Name
			}
			if rec.Points != 0 {
				item.Points = rec.Points
			}
			if len(rec.CompletedBy) > 0 {
				item.Completed = true
				item.Teams = "Completed by: " + strings.Join(rec.CompletedBy, ", ")
			}
		}
		items = append(items, item)
	}
	return r.execute(display.MilestoneGrid, "grid", items)
}

type achievementView struct {
	Team        string
	Date        string
	Name        string
	Description template.HTML
}

// CustomAchievements lists the most recent custom achievements. Pages
// without the region are skipped.
func (r *Renderer) CustomAchievements(items []model.CustomAchievement) error {
	if !r.target.Has(display.CustomAchievements) {
		return nil
	}

	sorted := make([]model.CustomAchievement, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp.Time)
	})
	if len(sorted) > r.achievementLimit {
		sorted = sorted[:r.achievementLimit]
	}

	views := make([]achievementView, 0, len(sorted))
	for _, a := range sorted {
		views = append(views, achievementView{
			Team:        a.Team,
			Date:        r.format(a.Timestamp, DateLayout, placeholderCell),
			Name:        a.Name,
			Description: Sanitize(a.Description),
		})
	}
	return r.execute(display.CustomAchievements, "achievements", views)
}

func (r *Renderer) format(ts model.Timestamp, layout, absent string) string {
	if !ts.Valid() {
		return absent
	}
	return ts.In(r.loc).Format(layout)
}

func (r *Renderer) execute(region, name string, data any) error {
	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Errorf("render %s: %w", region, err)
	}
	return r.target.SetHTML(region, b.String())
}
