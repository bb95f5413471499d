package simulate

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"time"

	"github.com/okian/standings/internal/domain/catalog"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/publish"
)

// Constants for the pass distribution.
const (
	newMilestoneOdds = 3 // one new milestone in this many submissions on average
	regressionOdds   = 8 // one lost milestone in this many submissions on average
)

// Intn returns a value in [0, n).
type Intn func(n int) int

// cryptoIntn draws from crypto/rand.
func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Generator produces one team's submission at a time, remembering what each
// team has passed so totals mostly grow.
type Generator struct {
	teams      []string
	milestones []catalog.Entry
	passed     map[string]map[string]bool
	intn       Intn
}

// NewGenerator creates a generator for teams. A nil intn uses crypto/rand.
func NewGenerator(teams []string, intn Intn) *Generator {
	if intn == nil {
		intn = cryptoIntn
	}
	return &Generator{
		teams:      teams,
		milestones: catalog.Milestones(),
		passed:     make(map[string]map[string]bool, len(teams)),
		intn:       intn,
	}
}

// Next returns the results of one submission made at at.
func (g *Generator) Next(at time.Time) publish.Results {
	team := g.teams[g.intn(len(g.teams))]
	done := g.passed[team]
	if done == nil {
		done = make(map[string]bool)
		g.passed[team] = done
	}

	var open, closed []string
	for _, m := range g.milestones {
		if done[m.ID] {
			closed = append(closed, m.ID)
		} else {
			open = append(open, m.ID)
		}
	}
	switch {
	case len(open) > 0 && g.intn(newMilestoneOdds) == 0:
		done[open[g.intn(len(open))]] = true
	case len(closed) > 0 && g.intn(regressionOdds) == 0:
		delete(done, closed[g.intn(len(closed))])
	}

	res := publish.Results{Team: team, Timestamp: model.At(at)}
	for _, m := range g.milestones {
		if done[m.ID] {
			res.Passed = append(res.Passed, publish.Milestone{ID: m.ID, Name: m.Name, Points: m.Points})
			res.TotalPoints += m.Points
			continue
		}
		failed, _ := json.Marshal(map[string]string{"id": m.ID, "name": m.Name})
		res.Failed = append(res.Failed, failed)
	}
	return res
}

// DefaultTeams are the teams with a dashboard colour.
func DefaultTeams() []string {
	return []string{"alpha", "beta", "gamma", "delta", "epsilon"}
}
