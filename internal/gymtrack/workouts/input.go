package workouts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

var ErrInvalidInput = errors.New("invalid input")

type SetInput struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RIR       *int    `json:"rir"`
	Completed *bool   `json:"completed"`
}

type ExerciseInput struct {
	Name  string     `json:"name"`
	Order *int       `json:"order"`
	Sets  []SetInput `json:"sets"`
}

type WorkoutInput struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	RoutineID *string         `json:"routineId"`
	StartedAt *time.Time      `json:"startedAt"`
	EndedAt   *time.Time      `json:"endedAt"`
	Exercises []ExerciseInput `json:"exercises"`
}

type RoutineExerciseInput struct {
	Name       string `json:"name"`
	Order      *int   `json:"order"`
	TargetSets int    `json:"targetSets"`
	TargetReps int    `json:"targetReps"`
}

type RoutineInput struct {
	ID        string                 `json:"id,omitempty"`
	Name      string                 `json:"name"`
	Exercises []RoutineExerciseInput `json:"exercises"`
}

// SyncUploadInput keeps the two arrays as pointers, so a missing array can be told apart from an empty one.
type SyncUploadInput struct {
	Routines *[]RoutineInput `json:"routines"`
	Workouts *[]WorkoutInput `json:"workouts"`
}

type workoutDefaults struct {
	completed  bool
	orderIndex bool
}

var (
	// a new workout logged from a client: sets are pending until marked
	createDefaults = workoutDefaults{completed: false, orderIndex: true}
	// uploaded history: sets were already done on the device
	uploadDefaults = workoutDefaults{completed: true, orderIndex: false}
)

func (in WorkoutInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	for i, e := range in.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: exercise %d: name is required", ErrInvalidInput, i)
		}
		for j, s := range e.Sets {
			if !(s.Weight >= 0) || s.Reps < 0 {
				return fmt.Errorf("%w: exercise %q set %d: %s", ErrInvalidInput, e.Name, j+1, model.ErrInvalidSet)
			}
		}
	}
	if in.StartedAt != nil && in.EndedAt != nil && in.EndedAt.Before(*in.StartedAt) {
		return fmt.Errorf("%w: endedAt is before startedAt", ErrInvalidInput)
	}
	return nil
}

func (in WorkoutInput) toModel(id string, now time.Time, defaults workoutDefaults) model.WorkoutLog {
	startedAt := now
	if in.StartedAt != nil {
		startedAt = *in.StartedAt
	}

	exercises := make([]model.ExerciseEntry, 0, len(in.Exercises))
	for i, e := range in.Exercises {
		order := 0
		if e.Order != nil {
			order = *e.Order
		} else if defaults.orderIndex {
			order = i
		}

		sets := make([]model.SetEntry, 0, len(e.Sets))
		for _, s := range e.Sets {
			completed := defaults.completed
			if s.Completed != nil {
				completed = *s.Completed
			}
			sets = append(sets, model.SetEntry{
				Weight:    s.Weight,
				Reps:      s.Reps,
				RIR:       s.RIR,
				Completed: completed,
			})
		}

		exercises = append(exercises, model.ExerciseEntry{
			Name:  e.Name,
			Order: order,
			Sets:  sets,
		})
	}

	return model.WorkoutLog{
		ID:        id,
		Name:      in.Name,
		RoutineID: in.RoutineID,
		StartedAt: storedTime(startedAt),
		EndedAt:   storedTimePtr(in.EndedAt),
		Exercises: exercises,
	}
}

func (in RoutineInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	for i, e := range in.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: exercise %d: name is required", ErrInvalidInput, i)
		}
	}
	return nil
}

// toModel builds a routine. Unless keepOrder is set, exercise order follows the list position.
func (in RoutineInput) toModel(id string, now time.Time, keepOrder bool) model.Routine {
	exercises := make([]model.RoutineExercise, 0, len(in.Exercises))
	for i, e := range in.Exercises {
		order := i
		if keepOrder {
			order = 0
			if e.Order != nil {
				order = *e.Order
			}
		}
		exercises = append(exercises, model.RoutineExercise{
			Name:       e.Name,
			Order:      order,
			TargetSets: e.TargetSets,
			TargetReps: e.TargetReps,
		})
	}

	now = storedTime(now)
	return model.Routine{
		ID:        id,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Exercises: exercises,
	}
}

// storedTime matches what a round trip through Postgres gives back: microseconds, in UTC.
func storedTime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond).UTC()
}

func storedTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	s := storedTime(*t)
	return &s
}
