package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/standings/internal/config"
)

const snapshotJSON = `{
  "lastUpdate": "2024-05-01T12:00:00Z",
  "teams": {"alpha": {"totalPoints": 30, "completedMilestones": ["m1"], "submissions": []}},
  "milestoneStats": {"m1": {"name": "First", "points": 30, "completedBy": ["alpha"]}},
  "timeline": []
}`

func execute(args ...string) (string, string, error) {
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	Convey("Given the root command", t, func() {
		Convey("When version is requested", func() {
			out, _, err := execute("version")

			Convey("Then the version is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "standings v"+Version)
			})
		})

		Convey("When show reads a source given by flag", func() {
			path := filepath.Join(t.TempDir(), "data.json")
			So(os.WriteFile(path, []byte(snapshotJSON), 0o600), ShouldBeNil)

			out, _, err := execute("show", "--source", path, "--format", "json")

			Convey("Then the snapshot from that source is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, `"team": "alpha"`)
				So(out, ShouldContainSubstring, `"totalPoints": 30`)
			})
		})

		Convey("When a flag fails validation", func() {
			_, _, err := execute("show", "--timezone", "Nowhere/Zone")

			Convey("Then the config error is returned", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When a config file sets the source", func() {
			dir := t.TempDir()
			data := filepath.Join(dir, "data.json")
			So(os.WriteFile(data, []byte(snapshotJSON), 0o600), ShouldBeNil)
			cfgPath := filepath.Join(dir, "standings.yaml")
			So(os.WriteFile(cfgPath, []byte("source: "+data+"\n"), 0o600), ShouldBeNil)

			out, _, err := execute("show", "--config", cfgPath, "-f", "csv")

			Convey("Then the file is used", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "alpha")
			})
		})

		Convey("When the command is unknown", func() {
			_, _, err := execute("dance")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
