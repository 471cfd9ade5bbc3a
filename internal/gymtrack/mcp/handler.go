package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
)

type reportsService interface {
	Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error)
	ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error)
	Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error)
}

// Handler turns tool calls into report requests and renders the report JSON as text.
type Handler struct {
	service reportsService
}

func NewHandler(service reportsService) *Handler {
	return &Handler{
		service: service,
	}
}

type StatsInput struct {
	TimeRange string `json:"time_range,omitempty" jsonschema:"One of 7d, 30d, 90d, all. Defaults to 30d"`
}

// GetWorkoutStatsTool returns the MCP tool handler for get_workout_stats.
func (h *Handler) GetWorkoutStatsTool() func(context.Context, *mcp.CallToolRequest, StatsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StatsInput) (*mcp.CallToolResult, any, error) {
		report, err := h.service.Stats(ctx, analytics.ParseTimeRange(in.TimeRange))
		if err != nil {
			return errorResult("Error fetching workout stats: " + err.Error()), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}

type ExerciseHistoryInput struct {
	ExerciseName string `json:"exercise_name" jsonschema:"Exact exercise name, case sensitive (e.g. Bench Press)"`
	TimeRange    string `json:"time_range,omitempty" jsonschema:"One of 7d, 30d, 90d, all. Defaults to 30d"`
}

// GetExerciseHistoryTool returns the MCP tool handler for get_exercise_history.
func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseName == "" {
			return errorResult("exercise_name is required"), nil, nil
		}
		report, err := h.service.ExerciseHistory(ctx, in.ExerciseName, analytics.ParseTimeRange(in.TimeRange))
		if err != nil {
			return errorResult("Error fetching exercise history: " + err.Error()), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}

type StreakInput struct {
	WeeklyGoal *int `json:"weekly_goal,omitempty" jsonschema:"Workouts per week needed to keep the streak, 1 to 7. Defaults to 3"`
}

// GetStreakTool returns the MCP tool handler for get_streak.
func (h *Handler) GetStreakTool() func(context.Context, *mcp.CallToolRequest, StreakInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StreakInput) (*mcp.CallToolResult, any, error) {
		goal := analytics.DefaultWeeklyGoal
		if in.WeeklyGoal != nil {
			goal = *in.WeeklyGoal
		}
		if err := analytics.ValidateWeeklyGoal(goal); err != nil {
			return errorResult("Weekly goal must be between 1 and 7"), nil, nil
		}

		report, err := h.service.Streak(ctx, goal)
		if err != nil {
			return errorResult("Error fetching streak: " + err.Error()), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}

func jsonResult(report any) *mcp.CallToolResult {
	raw, err := json.Marshal(report)
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
