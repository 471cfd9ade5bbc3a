package analytics

import (
	"math"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type Volume struct {
	TotalWorkouts int
	AvgDuration   int // minutes
	TotalVolume   int
}

// AggregateVolume counts the workouts, averages the duration of the finished ones
// and sums weight x reps over every completed set. Volume is rounded once, at the end.
func AggregateVolume(workouts []model.WorkoutLog) Volume {
	var (
		minutesSum  float64
		endedCount  int
		volumeTotal float64
	)

	for _, w := range workouts {
		if w.EndedAt != nil {
			minutesSum += w.EndedAt.Sub(w.StartedAt).Minutes()
			endedCount++
		}
		for _, e := range w.Exercises {
			for _, s := range e.CompletedSets() {
				volumeTotal += s.Weight * float64(s.Reps)
			}
		}
	}

	avgDuration := 0
	if endedCount > 0 {
		avgDuration = roundHalfUp(minutesSum / float64(endedCount))
	}

	return Volume{
		TotalWorkouts: len(workouts),
		AvgDuration:   avgDuration,
		TotalVolume:   roundHalfUp(volumeTotal),
	}
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
