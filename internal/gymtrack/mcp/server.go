package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the three workout reports as tools.
func NewServer(service reportsService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymtrack",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_stats",
		Description: "Returns totals for a time range: workout count, average duration in minutes, total volume (kg x reps of completed sets), workouts per week of year, and per exercise stats sorted by set count. Arg: time_range (7d, 30d, 90d, all).",
	}, h.GetWorkoutStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns one data point per workout for an exercise (max and average weight, reps, sets) plus the personal record. Args: exercise_name (exact, case sensitive), optional time_range. Use when asked how an exercise progressed.",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_streak",
		Description: "Returns the current and longest run of weeks meeting the weekly goal, this week's progress, a 12 week history, and an 84 day calendar heatmap. Arg: weekly_goal (1 to 7, default 3).",
	}, h.GetStreakTool())

	return s
}
