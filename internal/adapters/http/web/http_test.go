package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/adapters/http/web"
	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/charts"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
	"github.com/okian/standings/internal/render"
)

// fakeDeps serves a fixed snapshot rendered onto a real page.
type fakeDeps struct {
	page   *display.Page
	snap   *model.Snapshot
	mu     sync.Mutex
	joined int
	left   int
}

func newFakeDeps(opts ...display.Option) *fakeDeps {
	snap := model.Empty()
	snap.LastUpdate = model.At(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	snap.Teams = model.Teams{
		{Name: "alpha", Record: model.TeamRecord{TotalPoints: 50, CompletedMilestones: []string{"a", "b"}, Submissions: []model.Submission{{Points: 10}, {Points: 50}}}},
		{Name: "beta", Record: model.TeamRecord{TotalPoints: 80, CompletedMilestones: []string{"b"}}},
		{Name: "gamma", Record: model.TeamRecord{TotalPoints: 5}},
	}
	page := display.NewPage(opts...)
	ranked := stats.Rank(snap.Teams)
	_ = render.New(page, render.WithLocation(time.UTC)).Render(context.Background(), snap, stats.Summarize(snap), ranked)
	pc, _ := page.Canvas(display.PointsChart)
	cc, _ := page.Canvas(display.CompletionChart)
	_ = charts.New(pc, cc).Render(ranked)
	return &fakeDeps{page: page, snap: snap}
}

func (f *fakeDeps) Page() *display.Page       { return f.page }
func (f *fakeDeps) Snapshot() *model.Snapshot { return f.snap }
func (f *fakeDeps) Summary() stats.Summary    { return stats.Summarize(f.snap) }
func (f *fakeDeps) Ranked() []model.Team      { return stats.Rank(f.snap.Teams) }
func (f *fakeDeps) Status() service.Status    { return service.Status{Refreshes: 1} }

func (f *fakeDeps) ViewerJoined() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined++
	return f.joined - f.left
}

func (f *fakeDeps) ViewerLeft() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left++
	return f.joined - f.left
}

func (f *fakeDeps) counts() (joined, left int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joined, f.left
}

func serve(deps web.Dependencies) http.Handler {
	return web.NewServer(deps, web.WithMaxLimit(2)).Routes(context.Background())
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPage(t *testing.T) {
	Convey("Given a rendered dashboard", t, func() {
		h := serve(newFakeDeps())

		Convey("When the page is requested", func() {
			w := get(h, "/")
			body := w.Body.String()

			Convey("Then it carries every region with its current content", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				for _, id := range display.RegionIDs() {
					So(body, ShouldContainSubstring, `id="`+id+`"`)
				}
				So(body, ShouldContainSubstring, `<p id="totalPoints">135</p>`)
				So(body, ShouldContainSubstring, `<tr class="gold"><td>1</td><td>beta</td>`)
			})

			Convey("Then it subscribes to updates and sizes the canvases", func() {
				So(body, ShouldContainSubstring, "data-init")
				So(body, ShouldContainSubstring, "/updates")
				So(body, ShouldContainSubstring, `<canvas id="pointsChart" width="600" height="300">`)
			})
		})

		Convey("When a region changes between two requests", func() {
			first := get(h, "/").Body.String()
			deps := newFakeDeps()
			h = serve(deps)
			So(deps.page.SetText(display.TotalPoints, "999"), ShouldBeNil)
			second := get(h, "/").Body.String()

			Convey("Then each response shows the content of its own page", func() {
				So(first, ShouldContainSubstring, `<p id="totalPoints">135</p>`)
				So(second, ShouldContainSubstring, `<p id="totalPoints">999</p>`)
				So(get(h, "/").Body.String(), ShouldEqual, second)
			})
		})

		Convey("When a static asset is requested", func() {
			w := get(h, "/static/dashboard.js")

			Convey("Then it is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "standingsDraw")
			})
		})
	})

	Convey("Given a page without the custom achievements region", t, func() {
		body := get(serve(newFakeDeps(display.WithoutRegion(display.CustomAchievements))), "/").Body.String()

		So(body, ShouldNotContainSubstring, `id="customAchievements"`)
	})
}

func TestAPI(t *testing.T) {
	Convey("Given the JSON API", t, func() {
		h := serve(newFakeDeps())

		Convey("When the summary is requested", func() {
			w := get(h, "/api/summary")
			var got map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then it reports the headline numbers", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(got["totalTeams"], ShouldEqual, 3.0)
				So(got["totalPoints"], ShouldEqual, 135.0)
				So(got["uniqueMilestones"], ShouldEqual, 2.0)
				So(got["lastUpdate"], ShouldEqual, "2024-05-01T12:00:00Z")
				So(got["popularMilestone"], ShouldBeNil)
			})
		})

		Convey("When the whole leaderboard is requested", func() {
			w := get(h, "/api/leaderboard")
			var got []web.Entry
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then trends decode back by name", func() {
				So(got, ShouldHaveLength, 3)
				So(got[1].Team, ShouldEqual, "alpha")
				So(got[1].Trend, ShouldResemble, stats.Trend{Kind: stats.TrendUp, Gain: 40})
				So(got[0].Trend.Kind, ShouldEqual, stats.TrendNone)
			})
		})

		Convey("When the leaderboard is requested with a limit", func() {
			w := get(h, "/api/leaderboard?limit=1")
			var got []web.Entry
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then the top team is returned", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Team, ShouldEqual, "beta")
				So(got[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When the leaderboard is requested without a limit", func() {
			w := get(h, "/api/leaderboard")
			var got []map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)

			Convey("Then it is capped at the maximum", func() {
				So(got, ShouldHaveLength, 2)
				trend := got[1]["trend"].(map[string]any)
				So(trend["kind"], ShouldEqual, "up")
				So(trend["gain"], ShouldEqual, 40.0)
			})
		})

		Convey("When the limit is invalid or too large", func() {
			bad := get(h, "/api/leaderboard?limit=zero")
			big := get(h, "/api/leaderboard?limit=3")

			Convey("Then both are rejected", func() {
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
				So(bad.Body.String(), ShouldContainSubstring, "bad_request")
				So(big.Code, ShouldEqual, http.StatusBadRequest)
				So(big.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When metrics are requested", func() {
			_ = get(h, "/api/summary")
			w := get(h, "/healthz")

			Convey("Then the exposition includes request counters", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "standings_dashboard_http_requests_total")
			})
		})

		Convey("When the API docs are requested", func() {
			So(get(h, "/api-docs").Code, ShouldEqual, http.StatusOK)
			So(get(h, "/openapi.yaml").Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestUpdates(t *testing.T) {
	Convey("Given an open update stream", t, func() {
		deps := newFakeDeps()
		srv := httptest.NewServer(serve(deps))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/updates", http.NoBody)
		So(err, ShouldBeNil)
		resp, err := http.DefaultClient.Do(req)
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		lines := make(chan string, 256)
		go func() {
			sc := bufio.NewScanner(resp.Body)
			sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for sc.Scan() {
				lines <- sc.Text()
			}
			close(lines)
		}()
		readUntil := func(want string) bool {
			timeout := time.After(2 * time.Second)
			for {
				select {
				case line, ok := <-lines:
					if !ok {
						return false
					}
					if strings.Contains(line, want) {
						return true
					}
				case <-timeout:
					return false
				}
			}
		}

		Convey("Then the current regions and charts are pushed at once", func() {
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/event-stream")
			So(readUntil("datastar-patch-elements"), ShouldBeTrue)
			So(readUntil("#rankingsBody"), ShouldBeTrue)
			So(readUntil("standingsDraw"), ShouldBeTrue)
			joined, _ := deps.counts()
			So(joined, ShouldEqual, 1)
		})

		Convey("When a region changes", func() {
			So(readUntil("standingsDraw"), ShouldBeTrue)
			So(deps.page.SetText(display.TotalTeams, "42"), ShouldBeNil)

			Convey("Then the patch is streamed", func() {
				So(readUntil("#totalTeams"), ShouldBeTrue)
				So(readUntil("42"), ShouldBeTrue)
			})
		})

		Convey("When the viewer goes away", func() {
			So(readUntil("datastar-patch-elements"), ShouldBeTrue)
			cancel()

			Convey("Then the viewer is counted out", func() {
				deadline := time.Now().Add(2 * time.Second)
				for time.Now().Before(deadline) {
					if _, left := deps.counts(); left == 1 {
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				_, left := deps.counts()
				So(left, ShouldEqual, 1)
			})
		})
	})
}

func TestDrawScript(t *testing.T) {
	Convey("Given canvas states", t, func() {
		So(web.DrawScript(display.CanvasState{ID: "pointsChart"}), ShouldEqual, `window.standingsClear("pointsChart")`)
		So(web.DrawScript(display.CanvasState{ID: "c", Instance: "i", Config: []byte(`{"type":"bar"}`), Width: 600, Height: 300}),
			ShouldEqual, `window.standingsDraw("c", {"type":"bar"}, 600, 300)`)
	})
}
