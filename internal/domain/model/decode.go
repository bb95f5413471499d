package model

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads one snapshot document and fills defaults for every optional field.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	s.Normalize()
	return &s, nil
}

// Normalize replaces absent collections with empty ones so readers never
// need nil checks.
func (s *Snapshot) Normalize() {
	if s.Teams == nil {
		s.Teams = Teams{}
	}
	if s.MilestoneStats == nil {
		s.MilestoneStats = Milestones{}
	}
	if s.CustomMilestones.Items == nil {
		s.CustomMilestones.Items = []CustomAchievement{}
	}
	if s.Timeline == nil {
		s.Timeline = []Event{}
	}
	for i := range s.Teams {
		rec := &s.Teams[i].Record
		if rec.CompletedMilestones == nil {
			rec.CompletedMilestones = []string{}
		}
		if rec.Submissions == nil {
			rec.Submissions = []Submission{}
		}
	}
	for i := range s.MilestoneStats {
		if s.MilestoneStats[i].Record.CompletedBy == nil {
			s.MilestoneStats[i].Record.CompletedBy = []string{}
		}
	}
}

// Empty returns a normalized snapshot with no data.
func Empty() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}
