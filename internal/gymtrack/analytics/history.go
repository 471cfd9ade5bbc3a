package analytics

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type SetSnapshot struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RIR    *int    `json:"rir"`
}

type WorkoutDataPoint struct {
	Date      time.Time     `json:"date"`
	WorkoutID string        `json:"workoutId"`
	MaxWeight float64       `json:"maxWeight"`
	AvgWeight int           `json:"avgWeight"`
	TotalReps int           `json:"totalReps"`
	TotalSets int           `json:"totalSets"`
	Sets      []SetSnapshot `json:"sets"`
}

type PersonalRecord struct {
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	Date      time.Time `json:"date"`
	WorkoutID string    `json:"workoutId"`
}

// BuildExerciseHistory emits one data point per workout containing an exercise named
// exactly exerciseName, plus the personal record over those points. Only the first
// matching entry of a workout is used. No matches yields an empty history and a nil record.
func BuildExerciseHistory(workouts []model.WorkoutLog, exerciseName string) ([]WorkoutDataPoint, *PersonalRecord) {
	history := make([]WorkoutDataPoint, 0)
	for _, w := range workouts {
		entry, found := findExercise(w, exerciseName)
		if !found {
			continue
		}
		history = append(history, newDataPoint(w, entry))
	}
	return history, findPersonalRecord(history)
}

func findExercise(w model.WorkoutLog, name string) (model.ExerciseEntry, bool) {
	for _, e := range w.Exercises {
		if e.Name == name {
			return e, true
		}
	}
	return model.ExerciseEntry{}, false
}

func newDataPoint(w model.WorkoutLog, entry model.ExerciseEntry) WorkoutDataPoint {
	sets := entry.CompletedSets()
	point := WorkoutDataPoint{
		Date:      w.StartedAt.UTC(),
		WorkoutID: w.ID,
		TotalSets: len(sets),
		Sets:      make([]SetSnapshot, 0, len(sets)),
	}
	if len(sets) == 0 {
		return point
	}

	weightSum := 0.0
	point.MaxWeight = sets[0].Weight
	for _, s := range sets {
		if s.Weight > point.MaxWeight {
			point.MaxWeight = s.Weight
		}
		weightSum += s.Weight
		point.TotalReps += s.Reps
		point.Sets = append(point.Sets, SetSnapshot{
			Weight: s.Weight,
			Reps:   s.Reps,
			RIR:    s.RIR,
		})
	}
	point.AvgWeight = roundHalfUp(weightSum / float64(len(sets)))

	return point
}

// findPersonalRecord picks the point with the highest max weight, then the heaviest
// set within it. Both reductions use a strict >, so on ties the first one seen wins.
// Points without sets are never a record.
func findPersonalRecord(history []WorkoutDataPoint) *PersonalRecord {
	var best *WorkoutDataPoint
	for i := range history {
		p := &history[i]
		if len(p.Sets) == 0 {
			continue
		}
		if best == nil || p.MaxWeight > best.MaxWeight {
			best = p
		}
	}
	if best == nil {
		return nil
	}

	top := best.Sets[0]
	for _, s := range best.Sets[1:] {
		if s.Weight > top.Weight {
			top = s
		}
	}

	return &PersonalRecord{
		Weight:    top.Weight,
		Reps:      top.Reps,
		Date:      best.Date,
		WorkoutID: best.WorkoutID,
	}
}
