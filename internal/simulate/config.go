// Package simulate plays a competition against a snapshot file: random
// teams submit, pass more milestones over time, and every submission is
// published the same way graded results are.
package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	Output      string        // Snapshot file to publish into
	Teams       []string      // Competing teams; defaults to the palette teams
	Submissions int           // Number of submissions to play
	Interval    time.Duration // Pause between submissions; zero plays them back to back
}

// Stats holds run statistics.
type Stats struct {
	Submissions int
	Completions int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}
