package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered on that registry", func() {
				So(manager, ShouldNotBeNil)
				manager.viewers.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_viewers"], ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When a refresh succeeds and fails", func() {
			before := testutil.ToFloat64(globalManager.refreshes.WithLabelValues(OutcomeFailure))
			RecordRefresh(OutcomeSuccess)
			RecordRefresh(OutcomeFailure)

			Convey("Then the outcome counters move", func() {
				So(testutil.ToFloat64(globalManager.refreshes.WithLabelValues(OutcomeFailure)), ShouldEqual, before+1)
			})
		})

		Convey("When gauges are updated", func() {
			UpdateLiveCharts(2)
			UpdateViewers(4)
			UpdateSnapshotShape(3, 130)
			at := time.Unix(1_700_000_000, 0)
			MarkRefreshSucceeded(at)

			Convey("Then they hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.liveCharts), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.viewers), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.teams), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.totalPoints), ShouldEqual, 130)
				So(testutil.ToFloat64(globalManager.lastSuccessfulUnix), ShouldEqual, 1_700_000_000)
			})
		})

		Convey("When latencies and HTTP requests are recorded", func() {
			So(func() {
				RecordFetchLatency(12 * time.Millisecond)
				RecordRenderLatency(3 * time.Millisecond)
				RecordHTTPRequest("summary", "GET", "200")
				RecordHTTPRequestDuration("summary", "GET", "200", 1.5)
				RecordErrorByComponent("source", "fetch")
			}, ShouldNotPanic)
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
