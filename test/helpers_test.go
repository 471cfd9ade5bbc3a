//go:build integration_test || all_tests

package test

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

const testPassword = "squat-5x5"

// newUser registers a fresh account and returns a client signed in as it.
func (s *IntegrationTestSuite) newUser(ctx context.Context) (*cloud.Client, *cloud.Session) {
	client := cloud.NewClient(serverEndpoint, "", s.httpClient)
	session, err := client.Register(ctx, gofakeit.Email(), testPassword, gofakeit.FirstName())
	s.Require().NoError(err)
	s.Require().NotEmpty(session.Token)
	return client.WithToken(session.Token), session
}

func ptr[T any](v T) *T {
	return &v
}

// sampleBundle holds two routines and three finished workouts from the last days.
func sampleBundle(now time.Time) model.SyncBundle {
	day := func(daysAgo int) time.Time {
		return now.Add(-time.Duration(daysAgo) * 24 * time.Hour).Truncate(time.Minute).UTC()
	}
	finished := func(start time.Time, minutes int) *time.Time {
		return ptr(start.Add(time.Duration(minutes) * time.Minute))
	}

	return model.SyncBundle{
		Routines: []model.Routine{
			{
				ID:        "r-legs",
				Name:      "Legs",
				CreatedAt: day(10),
				UpdatedAt: day(10),
				Exercises: []model.RoutineExercise{
					{Name: "Squat", Order: 0, TargetSets: 5, TargetReps: 5},
					{Name: "Lunge", Order: 1, TargetSets: 3, TargetReps: 10},
				},
			},
			{
				ID:        "r-push",
				Name:      "Push",
				CreatedAt: day(9),
				UpdatedAt: day(9),
				Exercises: []model.RoutineExercise{
					{Name: "Bench Press", Order: 0, TargetSets: 3, TargetReps: 8},
				},
			},
		},
		Workouts: []model.WorkoutLog{
			{
				ID:        "w-1",
				Name:      "Legs",
				RoutineID: ptr("r-legs"),
				StartedAt: day(6),
				EndedAt:   finished(day(6), 50),
				Exercises: []model.ExerciseEntry{
					{Name: "Squat", Order: 0, Sets: []model.SetEntry{
						{Weight: 80, Reps: 5, Completed: true},
						{Weight: 85, Reps: 5, RIR: ptr(1), Completed: true},
						{Weight: 90, Reps: 2, Completed: false},
					}},
				},
			},
			{
				ID:        "w-2",
				Name:      "Push",
				RoutineID: ptr("r-push"),
				StartedAt: day(4),
				EndedAt:   finished(day(4), 40),
				Exercises: []model.ExerciseEntry{
					{Name: "Bench Press", Order: 0, Sets: []model.SetEntry{
						{Weight: 60, Reps: 8, Completed: true},
						{Weight: 62.5, Reps: 8, Completed: true},
					}},
				},
			},
			{
				ID:        "w-3",
				Name:      "Legs",
				StartedAt: day(1),
				EndedAt:   finished(day(1), 65),
				Exercises: []model.ExerciseEntry{
					{Name: "Squat", Order: 0, Sets: []model.SetEntry{
						{Weight: 87.5, Reps: 5, Completed: true},
					}},
					{Name: "Lunge", Order: 1, Sets: []model.SetEntry{
						{Weight: 20, Reps: 10, Completed: true},
						{Weight: 20, Reps: 10, Completed: true},
					}},
				},
			},
		},
	}
}
