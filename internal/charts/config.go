package charts

import (
	"github.com/okian/standings/internal/domain/catalog"
	"github.com/okian/standings/internal/domain/model"
)

// Config is a chart definition the browser's Chart.js draws as-is.
type Config struct {
	Type    string         `json:"type"`
	Data    Data           `json:"data"`
	Options map[string]any `json:"options"`
}

// Data is the chart's labels and datasets.
type Data struct {
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series.
type Dataset struct {
	Label           string  `json:"label"`
	Data            any     `json:"data"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor any     `json:"backgroundColor"`
	Tension         float64 `json:"tension,omitempty"`
}

// Point is one (x, y) sample of a line series.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// backgroundAlpha is appended to a hex colour for translucent fills.
const backgroundAlpha = "33"

// PointsConfig plots every team's submission totals by submission number.
func PointsConfig(ranked []model.Team) Config {
	datasets := make([]Dataset, 0, len(ranked))
	for _, team := range ranked {
		pts := make([]Point, 0, len(team.Record.Submissions))
		for i, s := range team.Record.Submissions {
			pts = append(pts, Point{X: i, Y: s.Points})
		}
		color := catalog.TeamColor(team.Name)
		datasets = append(datasets, Dataset{
			Label:           team.Name,
			Data:            pts,
			BorderColor:     color,
			BackgroundColor: color + backgroundAlpha,
			Tension:         0.1,
		})
	}

	return Config{
		Type: "line",
		Data: Data{Datasets: datasets},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"title":  map[string]any{"display": false},
				"legend": map[string]any{"position": "bottom"},
			},
			"scales": map[string]any{
				"x": map[string]any{
					"type":  "linear",
					"title": map[string]any{"display": true, "text": "Submission Number"},
				},
				"y": map[string]any{
					"title":       map[string]any{"display": true, "text": "Total Points"},
					"beginAtZero": true,
				},
			},
		},
	}
}

// CompletionConfig is one bar per team with its completed milestone count.
func CompletionConfig(ranked []model.Team) Config {
	labels := make([]string, 0, len(ranked))
	counts := make([]int, 0, len(ranked))
	colors := make([]string, 0, len(ranked))
	for _, team := range ranked {
		labels = append(labels, team.Name)
		counts = append(counts, len(team.Record.CompletedMilestones))
		colors = append(colors, catalog.TeamColor(team.Name))
	}

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Milestones Completed",
				Data:            counts,
				BackgroundColor: colors,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"legend": map[string]any{"display": false},
			},
			"scales": map[string]any{
				"y": map[string]any{
					"beginAtZero": true,
					"ticks":       map[string]any{"stepSize": 1},
				},
			},
		},
	}
}
