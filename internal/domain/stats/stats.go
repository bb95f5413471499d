// Package stats derives the dashboard summary, ranking and trends from a snapshot.
// Every function here is pure.
package stats

import (
	"sort"

	"github.com/okian/standings/internal/domain/model"
)

// PopularMilestone is the milestone completed by the most teams.
type PopularMilestone struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Teams int    `json:"teams"`
}

// Summary holds the headline numbers of a snapshot.
type Summary struct {
	TotalTeams       int               `json:"totalTeams"`
	TotalPoints      int               `json:"totalPoints"`
	UniqueMilestones int               `json:"uniqueMilestones"`
	Popular          *PopularMilestone `json:"popularMilestone"`
}

// Summarize computes the summary of s. A nil snapshot summarizes as empty.
func Summarize(s *model.Snapshot) Summary {
	if s == nil {
		return Summary{}
	}

	sum := Summary{TotalTeams: len(s.Teams)}
	seen := make(map[string]struct{})
	for _, team := range s.Teams {
		sum.TotalPoints += team.Record.TotalPoints
		for _, id := range team.Record.CompletedMilestones {
			seen[id] = struct{}{}
		}
	}
	sum.UniqueMilestones = len(seen)
	sum.Popular = popular(s.MilestoneStats)
	return sum
}

// popular picks the highest completedBy count; the first milestone in
// document order wins ties.
func popular(milestones model.Milestones) *PopularMilestone {
	var best *PopularMilestone
	for _, ms := range milestones {
		n := len(ms.Record.CompletedBy)
		if best != nil && n <= best.Teams {
			continue
		}
		name := ms.Record.Name
		if name == "" {
			name = ms.ID
		}
		best = &PopularMilestone{ID: ms.ID, Name: name, Teams: n}
	}
	return best
}

// Rank returns the teams ordered by total points, highest first. Teams with
// equal points keep their input order. The input is not modified.
func Rank(teams model.Teams) []model.Team {
	ranked := make([]model.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Record.TotalPoints > ranked[j].Record.TotalPoints
	})
	return ranked
}
