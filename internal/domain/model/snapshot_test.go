package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	model "github.com/okian/standings/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

const sampleDoc = `{
  "lastUpdate": "2024-03-01T10:00:00Z",
  "teams": {
    "zeta":  {"totalPoints": 40, "completedMilestones": ["card_witch"], "lastSubmission": "2024-03-01T09:00:00Z",
              "submissions": [{"timestamp": "2024-03-01T08:00:00Z", "points": 0}, {"timestamp": "2024-03-01T09:00:00Z", "points": 40}]},
    "alpha": {"totalPoints": 40, "completedMilestones": [], "customMilestones": [{"name": "x"}]},
    "Beta":  {"totalPoints": 10, "completedMilestones": ["bug_estate_supply"], "lastSubmission": null}
  },
  "milestoneStats": {
    "card_witch": {"name": "Witch Card", "points": 40, "completedBy": ["zeta"]},
    "bug_estate_supply": {"name": "Estate Supply Bug", "points": 20, "completedBy": ["Beta"]}
  },
  "customMilestones": {
    "c1": {"team": "alpha", "name": "Speedrun", "description": "fast", "timestamp": 1709280000000}
  },
  "timeline": [
    {"timestamp": "2024-03-01T09:00:00Z", "team": "zeta", "event": "Completed Witch Card", "points": 40},
    {"timestamp": "2024-03-01T08:30:00Z", "team": "alpha", "event": "Speedrun", "type": "custom"}
  ]
}`

func TestDecode(t *testing.T) {
	convey.Convey("Given a snapshot document", t, func() {
		convey.Convey("When it is decoded", func() {
			snap, err := model.Decode(strings.NewReader(sampleDoc))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then teams keep document order", func() {
				names := []string{}
				for _, team := range snap.Teams {
					names = append(names, team.Name)
				}
				convey.So(names, convey.ShouldResemble, []string{"zeta", "alpha", "Beta"})
			})

			convey.Convey("Then milestones keep document order", func() {
				convey.So(snap.MilestoneStats[0].ID, convey.ShouldEqual, "card_witch")
				convey.So(snap.MilestoneStats[1].ID, convey.ShouldEqual, "bug_estate_supply")
			})

			convey.Convey("Then optional fields get defaults", func() {
				alpha, ok := snap.Teams.Get("alpha")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(alpha.Submissions, convey.ShouldNotBeNil)
				convey.So(alpha.Submissions, convey.ShouldBeEmpty)
				convey.So(alpha.LastSubmission.Valid(), convey.ShouldBeFalse)
				convey.So(len(alpha.CustomMilestones), convey.ShouldEqual, 1)

				beta, _ := snap.Teams.Get("Beta")
				convey.So(beta.LastSubmission.Valid(), convey.ShouldBeFalse)
			})

			convey.Convey("Then keyed custom achievements are read with their ids", func() {
				convey.So(snap.CustomMilestones.Keyed, convey.ShouldBeTrue)
				convey.So(snap.CustomMilestones.Items, convey.ShouldHaveLength, 1)
				convey.So(snap.CustomMilestones.Items[0].ID, convey.ShouldEqual, "c1")
				convey.So(snap.CustomMilestones.Items[0].Timestamp.UTC(), convey.ShouldEqual, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
			})

			convey.Convey("Then event points distinguish absent from present", func() {
				convey.So(*snap.Timeline[0].Points, convey.ShouldEqual, 40)
				convey.So(snap.Timeline[1].Points, convey.ShouldBeNil)
				convey.So(snap.Timeline[1].IsCustom(), convey.ShouldBeTrue)
			})

			convey.Convey("Then encoding keeps the same order", func() {
				out, err := json.Marshal(snap)
				convey.So(err, convey.ShouldBeNil)
				s := string(out)
				convey.So(strings.Index(s, `"zeta"`), convey.ShouldBeLessThan, strings.Index(s, `"alpha"`))
				convey.So(strings.Index(s, `"alpha"`), convey.ShouldBeLessThan, strings.Index(s, `"Beta"`))
				convey.So(s, convey.ShouldContainSubstring, `"c1":`)
			})
		})

		convey.Convey("When the document is empty", func() {
			snap, err := model.Decode(strings.NewReader(`{}`))

			convey.Convey("Then every collection is empty but non-nil", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snap.Teams, convey.ShouldNotBeNil)
				convey.So(snap.MilestoneStats, convey.ShouldNotBeNil)
				convey.So(snap.CustomMilestones.Items, convey.ShouldNotBeNil)
				convey.So(snap.Timeline, convey.ShouldNotBeNil)
				convey.So(snap.LastUpdate.Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the document is not JSON", func() {
			_, err := model.Decode(strings.NewReader(`<html>`))

			convey.Convey("Then a decode error is returned", func() {
				convey.So(errors.Is(err, model.ErrDecode), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When teams is an array", func() {
			_, err := model.Decode(strings.NewReader(`{"teams": []}`))

			convey.Convey("Then the shape error surfaces", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, model.ErrNotObject), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When one timeline timestamp is unreadable", func() {
			snap, err := model.Decode(strings.NewReader(`{
				"teams": {"a": {"totalPoints": 5, "lastSubmission": true}},
				"timeline": [
					{"timestamp": "Mon Jan 15 2024", "team": "a", "event": "bad"},
					{"timestamp": "2024-01-15T10:30:00+0000", "team": "a", "event": "good"}
				]
			}`))

			convey.Convey("Then only that value is absent and the rest decodes", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snap.Timeline, convey.ShouldHaveLength, 2)
				convey.So(snap.Timeline[0].Timestamp.Valid(), convey.ShouldBeFalse)
				convey.So(snap.Timeline[0].Event, convey.ShouldEqual, "bad")
				convey.So(snap.Timeline[1].Timestamp.Valid(), convey.ShouldBeTrue)
				rec, ok := snap.Teams.Get("a")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(rec.TotalPoints, convey.ShouldEqual, 5)
				convey.So(rec.LastSubmission.Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When custom achievements are an array", func() {
			snap, err := model.Decode(strings.NewReader(`{"customMilestones": [{"team": "a", "name": "n"}]}`))

			convey.Convey("Then they are read unkeyed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(snap.CustomMilestones.Keyed, convey.ShouldBeFalse)
				convey.So(snap.CustomMilestones.Items[0].Team, convey.ShouldEqual, "a")
			})
		})
	})
}

func TestTimestamp(t *testing.T) {
	convey.Convey("Given timestamp inputs", t, func() {
		convey.Convey("Then RFC 3339 parses with its offset", func() {
			ts, err := model.ParseTimestamp("2024-03-01T10:00:00+02:00")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.UTC().Hour(), convey.ShouldEqual, 8)
		})

		convey.Convey("Then zone-less ISO parses in local time", func() {
			ts, err := model.ParseTimestamp("2024-03-01T10:00:00.123456")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.Location(), convey.ShouldEqual, time.Local)
			convey.So(ts.Hour(), convey.ShouldEqual, 10)
		})

		convey.Convey("Then empty is absent and garbage fails", func() {
			ts, err := model.ParseTimestamp("")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.Valid(), convey.ShouldBeFalse)

			_, err = model.ParseTimestamp("yesterday")
			convey.So(errors.Is(err, model.ErrTimestamp), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldEqual, `unrecognized timestamp "yesterday"`)
		})

		convey.Convey("Then an offset without a colon parses", func() {
			ts, err := model.ParseTimestamp("2024-01-15T10:30:00+0000")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.UTC().Hour(), convey.ShouldEqual, 10)
		})

		convey.Convey("Then absent encodes as null", func() {
			out, err := json.Marshal(model.Timestamp{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(out), convey.ShouldEqual, "null")
		})
	})
}

func TestTeamsSet(t *testing.T) {
	convey.Convey("Given ordered teams", t, func() {
		teams := model.Teams{}
		teams.Set("a", model.TeamRecord{TotalPoints: 1})
		teams.Set("b", model.TeamRecord{TotalPoints: 2})
		teams.Set("a", model.TeamRecord{TotalPoints: 3})

		convey.Convey("Then replacing keeps position", func() {
			convey.So(teams, convey.ShouldHaveLength, 2)
			convey.So(teams[0].Name, convey.ShouldEqual, "a")
			convey.So(teams[0].Record.TotalPoints, convey.ShouldEqual, 3)
		})
	})
}
