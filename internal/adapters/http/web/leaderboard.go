package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
)

// Entry is one ranked team in the JSON API.
type Entry struct {
	Rank                int             `json:"rank"`
	Team                string          `json:"team"`
	TotalPoints         int             `json:"totalPoints"`
	MilestonesCompleted int             `json:"milestonesCompleted"`
	CustomAchievements  int             `json:"customAchievements"`
	LastSubmission      model.Timestamp `json:"lastSubmission"`
	Trend               stats.Trend     `json:"trend"`
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps Dependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /api/leaderboard?limit=N requests.
// Without limit every team is returned, up to the maximum.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if parsed > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: max %d", ErrLimitExceeded, h.maxLimit))
			return
		}
		n = parsed
	}

	ranked := h.deps.Ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	writeJSON(w, http.StatusOK, Entries(ranked))
}

// Entries numbers ranked teams from 1.
func Entries(ranked []model.Team) []Entry {
	entries := make([]Entry, 0, len(ranked))
	for i, team := range ranked {
		entries = append(entries, Entry{
			Rank:                i + 1,
			Team:                team.Name,
			TotalPoints:         team.Record.TotalPoints,
			MilestonesCompleted: len(team.Record.CompletedMilestones),
			CustomAchievements:  len(team.Record.CustomMilestones),
			LastSubmission:      team.Record.LastSubmission,
			Trend:               stats.TrendOf(team.Record),
		})
	}
	return entries
}
