package analytics

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

// CalendarDays is the length of the heatmap: 12 full weeks.
const CalendarDays = 84

type CalendarDay struct {
	Date         string `json:"date"`
	WorkoutCount int    `json:"workoutCount"`
	Intensity    int    `json:"intensity"`
}

// Intensity maps a daily workout count to the 0..4 heatmap scale.
func Intensity(workoutCount int) int {
	switch {
	case workoutCount <= 0:
		return 0
	case workoutCount >= 4:
		return 4
	default:
		return workoutCount
	}
}

// BuildCalendarHeatmap returns CalendarDays consecutive days ending on now's date,
// counting completed workouts per start date. Days without workouts have intensity 0.
func BuildCalendarHeatmap(workouts []model.WorkoutLog, now time.Time, loc *time.Location) []CalendarDay {
	daily := make(map[string]int)
	for _, w := range workouts {
		if !w.Completed() {
			continue
		}
		daily[DateKey(w.StartedAt, loc)]++
	}

	today := now.In(loc)
	days := make([]CalendarDay, 0, CalendarDays)
	for i := 0; i < CalendarDays; i++ {
		// noon keeps the date stable across DST transitions
		date := time.Date(today.Year(), today.Month(), today.Day()-(CalendarDays-1)+i, 12, 0, 0, 0, loc)
		key := date.Format(dateKeyLayout)
		count := daily[key]
		days = append(days, CalendarDay{
			Date:         key,
			WorkoutCount: count,
			Intensity:    Intensity(count),
		})
	}

	return days
}
