package local

import (
	"context"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
)

func (s *Store) Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error) {
	workouts, err := s.AllWorkouts(ctx, "")
	if err != nil {
		return analytics.StatsReport{}, err
	}
	return s.engine.Stats(workouts, timeRange), nil
}

func (s *Store) ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error) {
	workouts, err := s.AllWorkouts(ctx, "")
	if err != nil {
		return analytics.ExerciseHistoryReport{}, err
	}
	return s.engine.ExerciseHistory(workouts, exerciseName, timeRange), nil
}

func (s *Store) Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error) {
	if err := analytics.ValidateWeeklyGoal(weeklyGoal); err != nil {
		return analytics.StreakReport{}, err
	}
	workouts, err := s.AllWorkouts(ctx, "")
	if err != nil {
		return analytics.StreakReport{}, err
	}
	return s.engine.Streak(workouts, weeklyGoal)
}
