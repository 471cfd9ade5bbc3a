package analytics_test

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

// testNow is a Wednesday.
var testNow = time.Date(2024, 5, 29, 18, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func set(weight float64, reps int) model.SetEntry {
	return model.SetEntry{Weight: weight, Reps: reps, Completed: true}
}

func setWithRIR(weight float64, reps, rir int) model.SetEntry {
	s := set(weight, reps)
	s.RIR = &rir
	return s
}

func exercise(name string, sets ...model.SetEntry) model.ExerciseEntry {
	return model.ExerciseEntry{Name: name, Sets: sets}
}

// workout builds a completed workout of the given length in minutes.
func workout(id string, startedAt time.Time, minutes int, exercises ...model.ExerciseEntry) model.WorkoutLog {
	endedAt := startedAt.Add(time.Duration(minutes) * time.Minute)
	for i := range exercises {
		exercises[i].Order = i
	}
	return model.WorkoutLog{
		ID:        id,
		Name:      "workout " + id,
		StartedAt: startedAt,
		EndedAt:   &endedAt,
		Exercises: exercises,
	}
}

func inProgress(id string, startedAt time.Time, exercises ...model.ExerciseEntry) model.WorkoutLog {
	w := workout(id, startedAt, 0, exercises...)
	w.EndedAt = nil
	return w
}

// weekOf returns n completed workouts on consecutive days starting at monday 10:00.
func weekOf(prefix string, monday time.Time, n int) []model.WorkoutLog {
	workouts := make([]model.WorkoutLog, 0, n)
	for i := 0; i < n; i++ {
		startedAt := time.Date(monday.Year(), monday.Month(), monday.Day()+i, 10, 0, 0, 0, time.UTC)
		workouts = append(workouts, workout(prefix+string(rune('a'+i)), startedAt, 60))
	}
	return workouts
}

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}
