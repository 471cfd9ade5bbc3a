package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidSet = errors.New("weight and reps must not be negative")

// WorkoutLog is one logged training session. It is not changed after it is saved.
// A nil EndedAt means the session is still in progress.
type WorkoutLog struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	RoutineID *string         `json:"routineId"`
	StartedAt time.Time       `json:"startedAt"`
	EndedAt   *time.Time      `json:"endedAt"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// Completed reports whether the workout has an end time.
func (w WorkoutLog) Completed() bool {
	return w.EndedAt != nil
}

// ValidateSets rejects sets with a negative weight or rep count.
func (w WorkoutLog) ValidateSets() error {
	for _, e := range w.Exercises {
		for i, s := range e.Sets {
			if !(s.Weight >= 0) || s.Reps < 0 {
				return fmt.Errorf("exercise %q set %d: %w", e.Name, i+1, ErrInvalidSet)
			}
		}
	}
	return nil
}

// ExerciseEntry groups the sets done for one exercise within a workout.
// Name is the identity key: it is compared as-is, without trimming or case folding.
type ExerciseEntry struct {
	Name  string     `json:"name"`
	Order int        `json:"order"`
	Sets  []SetEntry `json:"sets"`
}

// CompletedSets returns only the sets marked as completed, in their original order.
func (e ExerciseEntry) CompletedSets() []SetEntry {
	sets := make([]SetEntry, 0, len(e.Sets))
	for _, s := range e.Sets {
		if s.Completed {
			sets = append(sets, s)
		}
	}
	return sets
}

type SetEntry struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RIR       *int    `json:"rir"`
	Completed bool    `json:"completed"`
}
