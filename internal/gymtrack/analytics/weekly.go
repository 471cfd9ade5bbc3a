package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// WeekOfYearLabel returns the chart label "Week N" for t, where
// N = ceil((days since Jan 1 + weekday of Jan 1 + 1) / 7), Sunday being weekday 0.
// This is a chart label only; streaks use Monday-based weeks (see WeekStartKey).
func WeekOfYearLabel(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	days := float64(t.Sub(jan1).Milliseconds()) / float64(day.Milliseconds())
	week := int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))
	return fmt.Sprintf("Week %d", week)
}

// BucketByWeekOfYear counts workouts per week label, in the order labels are first seen.
func BucketByWeekOfYear(workouts []model.WorkoutLog, loc *time.Location) []WeekCount {
	index := make(map[string]int)
	buckets := make([]WeekCount, 0)
	for _, w := range workouts {
		label := WeekOfYearLabel(w.StartedAt, loc)
		if i, ok := index[label]; ok {
			buckets[i].Count++
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, WeekCount{Week: label, Count: 1})
	}
	return buckets
}
