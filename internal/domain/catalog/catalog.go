// Package catalog holds the fixed competition reference data: the known
// milestones shown on the grid and the team colour palette.
package catalog

import "strings"

// Entry is a known milestone with its default display name and points.
type Entry struct {
	ID     string
	Name   string
	Points int
}

var milestones = []Entry{
	{ID: "bug_estate_supply", Name: "Estate Supply Bug", Points: 20},
	{ID: "bug_controller_params", Name: "Controller Parameters", Points: 15},
	{ID: "bug_prompt_formatting", Name: "Prompt Formatting", Points: 10},
	{ID: "test_coverage_player", Name: "Player Test Coverage", Points: 15},
	{ID: "test_coverage_supply", Name: "Supply Test Coverage", Points: 15},
	{ID: "card_laboratory", Name: "Laboratory Card", Points: 25},
	{ID: "card_gardens", Name: "Gardens Card", Points: 30},
	{ID: "card_witch", Name: "Witch Card", Points: 40},
}

// Milestones returns the known milestones in display order. The slice is a copy.
func Milestones() []Entry {
	out := make([]Entry, len(milestones))
	copy(out, milestones)
	return out
}

// FallbackColor is used for team names outside the palette.
const FallbackColor = "#95A5A6"

var palette = map[string]string{
	"alpha":   "#FF6B6B",
	"beta":    "#4ECDC4",
	"gamma":   "#45B7D1",
	"delta":   "#96CEB4",
	"epsilon": "#FFEAA7",
	"zeta":    "#DDA0DD",
	"eta":     "#98D8C8",
	"theta":   "#F7DC6F",
}

// TeamColor returns the palette colour for a team, ignoring case.
func TeamColor(team string) string {
	if c, ok := palette[strings.ToLower(team)]; ok {
		return c
	}
	return FallbackColor
}
