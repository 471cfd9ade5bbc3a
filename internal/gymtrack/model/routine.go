package model

import "time"

type Routine struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Exercises []RoutineExercise `json:"exercises"`
}

type RoutineExercise struct {
	Name       string `json:"name"`
	Order      int    `json:"order"`
	TargetSets int    `json:"targetSets"`
	TargetReps int    `json:"targetReps"`
}

// WorkoutSummary is the list view of a workout.
type WorkoutSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	RoutineID     *string    `json:"routineId"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt"`
	ExerciseCount int        `json:"exerciseCount"`
}

// Summarize builds the list view of w.
func Summarize(w WorkoutLog) WorkoutSummary {
	return WorkoutSummary{
		ID:            w.ID,
		Name:          w.Name,
		RoutineID:     w.RoutineID,
		StartedAt:     w.StartedAt,
		EndedAt:       w.EndedAt,
		ExerciseCount: len(w.Exercises),
	}
}

// SyncBundle is the payload moved between local and cloud storage.
type SyncBundle struct {
	Routines []Routine    `json:"routines"`
	Workouts []WorkoutLog `json:"workouts"`
}
