package display

// Region ids of the dashboard page.
const (
	LastUpdate         = "lastUpdate"
	TotalTeams         = "totalTeams"
	TotalMilestones    = "totalMilestones"
	TotalPoints        = "totalPoints"
	PopularMilestone   = "popularMilestone"
	RankingsBody       = "rankingsBody"
	ActivityFeed       = "activityFeed"
	MilestoneGrid      = "milestoneGrid"
	CustomAchievements = "customAchievements"
)

// Canvas ids.
const (
	PointsChart     = "pointsChart"
	CompletionChart = "completionChart"
)

// RegionIDs lists every region in page order.
func RegionIDs() []string {
	return []string{
		LastUpdate, TotalTeams, TotalMilestones, TotalPoints, PopularMilestone,
		RankingsBody, ActivityFeed, MilestoneGrid, CustomAchievements,
	}
}

// CanvasIDs lists every chart surface in page order.
func CanvasIDs() []string {
	return []string{PointsChart, CompletionChart}
}
