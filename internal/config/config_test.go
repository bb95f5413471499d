package config_test

import (
	"testing"
	"time"

	"github.com/okian/standings/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Source, convey.ShouldEqual, "docs/data.json")
			convey.So(cfg.RefreshInterval, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.ChartWidth, convey.ShouldEqual, 600)
			convey.So(cfg.ChartHeight, convey.ShouldEqual, 300)
			convey.So(cfg.FeedLimit, convey.ShouldEqual, 10)
			convey.So(cfg.AchievementLimit, convey.ShouldEqual, 10)
			convey.So(cfg.ShowDownTrend, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then Location falls back to Local for an unknown zone", func() {
			cfg.Timezone = "Nowhere/Special"
			convey.So(cfg.Location(), convey.ShouldEqual, time.Local)
		})
	})
}
