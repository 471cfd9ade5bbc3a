//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/local"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

func (s *IntegrationTestSuite) TestRoutinesCRUD() {
	ctx := context.Background()
	client, _ := s.newUser(ctx)

	routines, err := client.Routines(ctx)
	s.Require().NoError(err)
	s.Empty(routines)

	created, err := client.CreateRoutine(ctx, model.Routine{
		Name: "Upper",
		Exercises: []model.RoutineExercise{
			{Name: "Bench Press", Order: 0, TargetSets: 3, TargetReps: 8},
			{Name: "Row", Order: 1, TargetSets: 3, TargetReps: 10},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.Len(created.Exercises, 2)

	created.Name = "Upper A"
	created.Exercises = created.Exercises[:1]
	updated, err := client.UpdateRoutine(ctx, *created)
	s.Require().NoError(err)
	s.Equal("Upper A", updated.Name)
	s.Len(updated.Exercises, 1)
	s.False(updated.UpdatedAt.Before(created.UpdatedAt))

	fetched, err := client.Routine(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Upper A", fetched.Name)

	// another user never sees it
	other, _ := s.newUser(ctx)
	_, err = other.Routine(ctx, created.ID)
	s.ErrorIs(err, cloud.ErrNotFound)
	s.ErrorIs(other.DeleteRoutine(ctx, created.ID), cloud.ErrNotFound)

	s.Require().NoError(client.DeleteRoutine(ctx, created.ID))
	_, err = client.Routine(ctx, created.ID)
	s.ErrorIs(err, cloud.ErrNotFound)
}

func (s *IntegrationTestSuite) TestWorkoutsAndAnalytics() {
	ctx := context.Background()
	client, _ := s.newUser(ctx)

	startedAt := time.Now().Add(-2 * time.Hour).Truncate(time.Second).UTC()
	endedAt := startedAt.Add(45 * time.Minute)
	saved, err := client.SaveWorkout(ctx, model.WorkoutLog{
		Name:      "Legs",
		StartedAt: startedAt,
		EndedAt:   &endedAt,
		Exercises: []model.ExerciseEntry{
			{Name: "Squat", Sets: []model.SetEntry{
				{Weight: 100, Reps: 5, Completed: true},
				{Weight: 105, Reps: 3, Completed: true},
			}},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.True(saved.StartedAt.Equal(startedAt))

	workouts, err := client.Workouts(ctx)
	s.Require().NoError(err)
	s.Require().Len(workouts, 1)
	s.Equal(saved.ID, workouts[0].ID)
	s.Equal(1, workouts[0].ExerciseCount)

	fetched, err := client.Workout(ctx, saved.ID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Exercises, 1)
	s.Len(fetched.Exercises[0].Sets, 2)

	stats, err := client.Stats(ctx, analytics.Range7Days)
	s.Require().NoError(err)
	s.Equal(1, stats.TotalWorkouts)
	s.Equal(45, stats.AvgDuration)
	s.Equal(100*5+105*3, stats.TotalVolume)

	history, err := client.ExerciseHistory(ctx, "Squat", analytics.RangeAll)
	s.Require().NoError(err)
	s.Require().Len(history.History, 1)
	s.Require().NotNil(history.PersonalRecord)
	s.Equal(105.0, history.PersonalRecord.Weight)

	// the report cache is dropped when a workout is added
	secondStart := startedAt.Add(-24 * time.Hour)
	secondEnd := secondStart.Add(30 * time.Minute)
	_, err = client.SaveWorkout(ctx, model.WorkoutLog{
		Name:      "Legs",
		StartedAt: secondStart,
		EndedAt:   &secondEnd,
		Exercises: []model.ExerciseEntry{
			{Name: "Squat", Sets: []model.SetEntry{{Weight: 110, Reps: 1, Completed: true}}},
		},
	})
	s.Require().NoError(err)

	stats, err = client.Stats(ctx, analytics.Range7Days)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalWorkouts)

	streak, err := client.Streak(ctx, 2)
	s.Require().NoError(err)
	s.Equal(2, streak.WeeklyGoal)
	s.Len(streak.CalendarData, analytics.CalendarDays)

	_, err = client.Streak(ctx, 9)
	s.Error(err)

	other, _ := s.newUser(ctx)
	_, err = other.Workout(ctx, saved.ID)
	s.ErrorIs(err, cloud.ErrNotFound)
}

func (s *IntegrationTestSuite) TestSyncUploadDownloadClear() {
	ctx := context.Background()
	client, _ := s.newUser(ctx)
	bundle := sampleBundle(time.Now())

	result, err := client.Upload(ctx, bundle)
	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(2, result.RoutinesCount)
	s.Equal(3, result.WorkoutsCount)

	downloaded, err := client.Export(ctx)
	s.Require().NoError(err)
	s.Len(downloaded.Routines, 2)
	s.Len(downloaded.Workouts, 3)

	routineIDs := map[string]string{}
	for _, r := range downloaded.Routines {
		routineIDs[r.ID] = r.Name
		s.NotEqual("r-legs", r.ID)
		s.NotEqual("r-push", r.ID)
	}
	linked := 0
	for _, w := range downloaded.Workouts {
		if w.RoutineID == nil {
			continue
		}
		linked++
		s.Equal(w.Name, routineIDs[*w.RoutineID], "uploaded workouts follow the new routine ids")
	}
	s.Equal(2, linked)

	// download into a fresh local store and read it back
	store, err := local.Open(filepath.Join(s.T().TempDir(), "gym.db"))
	s.Require().NoError(err)
	defer store.Close()
	s.Require().NoError(store.Replace(ctx, *downloaded))
	localWorkouts, err := store.Workouts(ctx)
	s.Require().NoError(err)
	s.Len(localWorkouts, 3)

	s.Require().NoError(client.Clear(ctx))
	cleared, err := client.Export(ctx)
	s.Require().NoError(err)
	s.Empty(cleared.Routines)
	s.Empty(cleared.Workouts)
}

// The server and the local store must build identical reports from the same workouts.
func (s *IntegrationTestSuite) TestReportsMatchLocalStore() {
	ctx := context.Background()
	client, _ := s.newUser(ctx)
	bundle := sampleBundle(time.Now())

	_, err := client.Upload(ctx, bundle)
	s.Require().NoError(err)

	store, err := local.Open(
		filepath.Join(s.T().TempDir(), "gym.db"),
		local.WithEngine(analytics.NewEngine(analytics.WithLocation(time.UTC))),
	)
	s.Require().NoError(err)
	defer store.Close()
	s.Require().NoError(store.Import(ctx, bundle))

	for _, timeRange := range []analytics.TimeRange{analytics.Range7Days, analytics.Range30Days, analytics.RangeAll} {
		remote, err := client.Stats(ctx, timeRange)
		s.Require().NoError(err)
		localStats, err := store.Stats(ctx, timeRange)
		s.Require().NoError(err)
		s.JSONEq(mustJSON(s, localStats), mustJSON(s, remote), "stats for %s", timeRange)
	}

	remoteStreak, err := client.Streak(ctx, 3)
	s.Require().NoError(err)
	localStreak, err := store.Streak(ctx, 3)
	s.Require().NoError(err)
	s.Equal(localStreak.CurrentStreak, remoteStreak.CurrentStreak)
	s.Equal(localStreak.LongestStreak, remoteStreak.LongestStreak)
	s.Equal(localStreak.CurrentWeekProgress, remoteStreak.CurrentWeekProgress)
	s.Equal(localStreak.CalendarData, remoteStreak.CalendarData)

	// workout ids differ after upload, everything else matches
	remoteHistory, err := client.ExerciseHistory(ctx, "Squat", analytics.RangeAll)
	s.Require().NoError(err)
	localHistory, err := store.ExerciseHistory(ctx, "Squat", analytics.RangeAll)
	s.Require().NoError(err)
	s.Require().Len(remoteHistory.History, len(localHistory.History))
	for i := range localHistory.History {
		s.True(localHistory.History[i].Date.Equal(remoteHistory.History[i].Date))
		s.Equal(localHistory.History[i].MaxWeight, remoteHistory.History[i].MaxWeight)
		s.Equal(localHistory.History[i].Sets, remoteHistory.History[i].Sets)
	}
	s.Require().NotNil(remoteHistory.PersonalRecord)
	s.Equal(87.5, remoteHistory.PersonalRecord.Weight)
}

func mustJSON(s *IntegrationTestSuite, v any) string {
	raw, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(raw)
}
