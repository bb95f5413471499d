package charts_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/charts"
	"github.com/okian/standings/internal/domain/model"
)

type fakeSurface struct {
	resets []string
	bound  map[string]bool
}

func newFakeSurface() *fakeSurface { return &fakeSurface{bound: map[string]bool{}} }

func (f *fakeSurface) Reset(w, h int) { f.resets = append(f.resets, fmt.Sprintf("%dx%d", w, h)) }

func (f *fakeSurface) Bind(id string, _ json.RawMessage) { f.bound[id] = true }

func (f *fakeSurface) Unbind(id string) { delete(f.bound, id) }

func teams() []model.Team {
	return []model.Team{
		{Name: "Beta", Record: model.TeamRecord{TotalPoints: 80, CompletedMilestones: []string{"b"}, Submissions: []model.Submission{{Points: 30}, {Points: 80}}}},
		{Name: "omega", Record: model.TeamRecord{TotalPoints: 50, CompletedMilestones: []string{"a", "b"}}},
	}
}

func TestManagerRender(t *testing.T) {
	Convey("Given a manager over two surfaces", t, func() {
		points, completion := newFakeSurface(), newFakeSurface()
		n := 0
		m := charts.New(points, completion,
			charts.WithSize(640, 320),
			charts.WithIDGenerator(func() string { n++; return fmt.Sprintf("chart-%d", n) }),
		)

		Convey("When rendering many times", func() {
			var previous *charts.Instance
			for i := 0; i < 5; i++ {
				So(m.Render(teams()), ShouldBeNil)
				if i == 0 {
					previous, _ = m.Instance(charts.SlotPoints)
				}
			}

			Convey("Then each slot holds exactly one live instance", func() {
				So(m.Live(), ShouldEqual, 2)
				So(points.bound, ShouldHaveLength, 1)
				So(completion.bound, ShouldHaveLength, 1)
			})

			Convey("Then earlier instances were destroyed", func() {
				So(previous.Destroyed(), ShouldBeTrue)
				current, ok := m.Instance(charts.SlotPoints)
				So(ok, ShouldBeTrue)
				So(current.ID, ShouldEqual, "chart-9")
				So(current.Destroyed(), ShouldBeFalse)
			})

			Convey("Then the surface was reset to the fixed size before every draw", func() {
				So(points.resets, ShouldHaveLength, 5)
				for _, r := range points.resets {
					So(r, ShouldEqual, "640x320")
				}
			})
		})

		Convey("When closed", func() {
			So(m.Render(teams()), ShouldBeNil)
			m.Close()

			Convey("Then nothing is live", func() {
				So(m.Live(), ShouldEqual, 0)
				So(points.bound, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a manager missing a surface", t, func() {
		m := charts.New(newFakeSurface(), nil)
		err := m.Render(teams())

		So(errors.Is(err, charts.ErrNoSurface), ShouldBeTrue)
		So(m.Live(), ShouldEqual, 1)
	})
}

func TestManagerOnPage(t *testing.T) {
	Convey("Given page canvases", t, func() {
		page := display.NewPage()
		pc, _ := page.Canvas(display.PointsChart)
		cc, _ := page.Canvas(display.CompletionChart)
		m := charts.New(pc, cc)

		Convey("When rendered", func() {
			So(m.Render(teams()), ShouldBeNil)
			So(m.Render(teams()), ShouldBeNil)

			Convey("Then each canvas shows the live instance at the default size", func() {
				inst, _ := m.Instance(charts.SlotCompletion)
				state := cc.State()
				So(state.Instance, ShouldEqual, inst.ID)
				So(state.Width, ShouldEqual, charts.DefaultWidth)
				So(state.Height, ShouldEqual, charts.DefaultHeight)
				So(string(state.Config), ShouldContainSubstring, `"type":"bar"`)
			})
		})
	})
}

func TestConfigs(t *testing.T) {
	Convey("Given ranked teams", t, func() {
		Convey("When the points chart is built", func() {
			cfg := charts.PointsConfig(teams())

			Convey("Then each team is a coloured series of submission totals", func() {
				So(cfg.Type, ShouldEqual, "line")
				So(cfg.Data.Datasets, ShouldHaveLength, 2)
				beta := cfg.Data.Datasets[0]
				So(beta.Label, ShouldEqual, "Beta")
				So(beta.BorderColor, ShouldEqual, "#4ECDC4")
				So(beta.BackgroundColor, ShouldEqual, "#4ECDC433")
				So(beta.Data, ShouldResemble, []charts.Point{{X: 0, Y: 30}, {X: 1, Y: 80}})
				So(cfg.Data.Datasets[1].BorderColor, ShouldEqual, "#95A5A6")
			})
		})

		Convey("When the completion chart is built", func() {
			cfg := charts.CompletionConfig(teams())

			Convey("Then bars hold milestone counts", func() {
				So(cfg.Type, ShouldEqual, "bar")
				So(cfg.Data.Labels, ShouldResemble, []string{"Beta", "omega"})
				So(cfg.Data.Datasets[0].Data, ShouldResemble, []int{1, 2})
				So(cfg.Data.Datasets[0].BackgroundColor, ShouldResemble, []string{"#4ECDC4", "#95A5A6"})
			})
		})
	})
}
