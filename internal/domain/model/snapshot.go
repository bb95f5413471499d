// Package model contains the snapshot document the dashboard reads.
package model

import "encoding/json"

// EventTypeCustom tags timeline events that announce a custom achievement.
const EventTypeCustom = "custom"

// Snapshot is one document describing the whole competition at a point in time.
type Snapshot struct {
	LastUpdate       Timestamp          `json:"lastUpdate"`
	Teams            Teams              `json:"teams"`
	MilestoneStats   Milestones         `json:"milestoneStats"`
	CustomMilestones CustomAchievements `json:"customMilestones"`
	Timeline         []Event            `json:"timeline"`
}

// TeamRecord is the per-team state inside a snapshot.
type TeamRecord struct {
	TotalPoints         int               `json:"totalPoints"`
	CompletedMilestones []string          `json:"completedMilestones"`
	CustomMilestones    []json.RawMessage `json:"customMilestones,omitempty"`
	LastSubmission      Timestamp         `json:"lastSubmission"`
	Submissions         []Submission      `json:"submissions"`
}

// Submission is one entry of a team's chronological submission history.
// Points is the team total after that submission.
type Submission struct {
	Timestamp Timestamp `json:"timestamp"`
	Points    int       `json:"points"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
}

// MilestoneRecord aggregates who completed a milestone.
type MilestoneRecord struct {
	Name        string   `json:"name"`
	Points      int      `json:"points"`
	CompletedBy []string `json:"completedBy"`
}

// CustomAchievement is a free-form achievement awarded to a team.
type CustomAchievement struct {
	// ID is the object key when the document stores achievements as a mapping.
	ID          string    `json:"-"`
	Team        string    `json:"team"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Timestamp   Timestamp `json:"timestamp"`
}

// Event is one timeline entry. Timelines are stored newest first.
type Event struct {
	Timestamp Timestamp `json:"timestamp"`
	Team      string    `json:"team"`
	Event     string    `json:"event"`
	Points    *int      `json:"points,omitempty"`
	Type      string    `json:"type,omitempty"`
}

// IsCustom reports whether the event announces a custom achievement.
func (e Event) IsCustom() bool { return e.Type == EventTypeCustom }

// Team pairs a team name with its record.
type Team struct {
	Name   string
	Record TeamRecord
}

// Milestone pairs a milestone id with its record.
type Milestone struct {
	ID     string
	Record MilestoneRecord
}
