// Package publish folds one team's submission results into the snapshot
// document the dashboard reads.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/okian/standings/internal/domain/model"
)

// TimelineCap is the number of events kept in the timeline.
const TimelineCap = 50

// Milestone is one milestone a submission passed or failed.
type Milestone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Results is the outcome of one graded submission.
type Results struct {
	Team        string            `json:"team"`
	TotalPoints int               `json:"totalPoints"`
	Timestamp   model.Timestamp   `json:"timestamp"`
	Passed      []Milestone       `json:"passed"`
	Failed      []json.RawMessage `json:"failed"`
}

// Validate checks the fields Merge relies on.
func (r Results) Validate() error {
	switch {
	case strings.TrimSpace(r.Team) == "":
		return fmt.Errorf("%w: team is required", ErrInvalidResult)
	case r.TotalPoints < 0:
		return fmt.Errorf("%w: totalPoints must not be negative", ErrInvalidResult)
	}
	for i, m := range r.Passed {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: passed[%d] has no id", ErrInvalidResult, i)
		}
	}
	return nil
}

// Merge applies results to snap in place. Only milestones the team had not
// completed before add a timeline event.
func Merge(snap *model.Snapshot, res Results, now time.Time) {
	snap.Normalize()

	rec, _ := snap.Teams.Get(res.Team)
	completed := make([]string, 0, len(res.Passed))
	for _, m := range res.Passed {
		completed = append(completed, m.ID)
	}
	rec.TotalPoints = res.TotalPoints
	rec.CompletedMilestones = completed
	rec.LastSubmission = res.Timestamp
	rec.Submissions = append(rec.Submissions, model.Submission{
		Timestamp: res.Timestamp,
		Points:    res.TotalPoints,
		Passed:    len(res.Passed),
		Failed:    len(res.Failed),
	})
	snap.Teams.Set(res.Team, rec)

	for _, m := range res.Passed {
		ms, ok := snap.MilestoneStats.Get(m.ID)
		if !ok {
			ms = model.MilestoneRecord{Name: m.Name, Points: m.Points, CompletedBy: []string{}}
		}
		if contains(ms.CompletedBy, res.Team) {
			continue
		}
		ms.CompletedBy = append(ms.CompletedBy, res.Team)
		snap.MilestoneStats.Set(m.ID, ms)

		points := m.Points
		snap.Timeline = append(snap.Timeline, model.Event{
			Timestamp: res.Timestamp,
			Team:      res.Team,
			Event:     "Completed " + displayName(m),
			Points:    &points,
		})
	}

	sort.SliceStable(snap.Timeline, func(i, j int) bool {
		return snap.Timeline[i].Timestamp.After(snap.Timeline[j].Timestamp.Time)
	})
	if len(snap.Timeline) > TimelineCap {
		snap.Timeline = snap.Timeline[:TimelineCap]
	}
	snap.LastUpdate = model.At(now)
}

// UpdateFile merges the results file into the snapshot file, creating the
// snapshot and its directory when missing.
func UpdateFile(resultsPath, outputPath string, now time.Time) error {
	res, err := readResults(resultsPath)
	if err != nil {
		return err
	}
	return Apply(res, outputPath, now)
}

// Apply merges res into the snapshot file at outputPath.
func Apply(res Results, outputPath string, now time.Time) error {
	if err := res.Validate(); err != nil {
		return err
	}

	snap, err := readSnapshot(outputPath)
	if err != nil {
		return err
	}

	Merge(snap, res, now)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSnapshot, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSnapshot, err)
	}
	if err := writeAtomic(outputPath, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSnapshot, err)
	}
	return nil
}

func readResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("%w: %w", ErrReadResults, err)
	}
	var res Results
	if err := json.Unmarshal(data, &res); err != nil {
		return Results{}, fmt.Errorf("%w: %s: %w", ErrReadResults, path, err)
	}
	return res, nil
}

func readSnapshot(path string) (*model.Snapshot, error) {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSnapshot, err)
	}
	defer func() { _ = fh.Close() }()

	snap, err := model.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadSnapshot, path, err)
	}
	return snap, nil
}

// writeAtomic replaces path through a rename so a watching dashboard never
// reads a half-written file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func displayName(m Milestone) string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
