package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type ExerciseStat struct {
	ExerciseName  string    `json:"exerciseName"`
	TotalSets     int       `json:"totalSets"`
	MaxWeight     float64   `json:"maxWeight"`
	AvgWeight     int       `json:"avgWeight"`
	LastPerformed time.Time `json:"lastPerformed"`
}

type exerciseAccumulator struct {
	totalSets     int
	maxWeight     float64
	weightSum     float64
	lastPerformed time.Time
}

func newExerciseAccumulator(set model.SetEntry, performedAt time.Time) exerciseAccumulator {
	return exerciseAccumulator{
		totalSets:     1,
		maxWeight:     set.Weight,
		weightSum:     set.Weight,
		lastPerformed: performedAt,
	}
}

func (a exerciseAccumulator) add(set model.SetEntry, performedAt time.Time) exerciseAccumulator {
	a.totalSets++
	a.maxWeight = math.Max(a.maxWeight, set.Weight)
	a.weightSum += set.Weight
	if performedAt.After(a.lastPerformed) {
		a.lastPerformed = performedAt
	}
	return a
}

// AggregateExerciseStats folds every completed set into a per-exercise rollup.
// The result is sorted by total sets, most trained first; ties keep the order in
// which the exercise names were first seen.
func AggregateExerciseStats(workouts []model.WorkoutLog) []ExerciseStat {
	accumulators := make(map[string]exerciseAccumulator)
	var names []string

	for _, w := range workouts {
		for _, e := range w.Exercises {
			for _, s := range e.CompletedSets() {
				acc, seen := accumulators[e.Name]
				if !seen {
					names = append(names, e.Name)
					accumulators[e.Name] = newExerciseAccumulator(s, w.StartedAt)
					continue
				}
				accumulators[e.Name] = acc.add(s, w.StartedAt)
			}
		}
	}

	stats := make([]ExerciseStat, 0, len(names))
	for _, name := range names {
		acc := accumulators[name]
		stats = append(stats, ExerciseStat{
			ExerciseName:  name,
			TotalSets:     acc.totalSets,
			MaxWeight:     acc.maxWeight,
			AvgWeight:     roundHalfUp(acc.weightSum / float64(acc.totalSets)),
			LastPerformed: acc.lastPerformed.UTC(),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSets > stats[j].TotalSets
	})

	return stats
}
