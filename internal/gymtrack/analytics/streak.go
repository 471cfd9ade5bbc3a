package analytics

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

const (
	DefaultWeeklyGoal = 3
	MinWeeklyGoal     = 1
	MaxWeeklyGoal     = 7

	weeklyHistoryLen = 12
	dateKeyLayout    = "2006-01-02"
)

var ErrInvalidWeeklyGoal = errors.New("weekly goal must be between 1 and 7")

type WeekBucket struct {
	WeekStartDate string `json:"weekStartDate"`
	WorkoutCount  int    `json:"workoutCount"`
	MetGoal       bool   `json:"metGoal"`
}

type WeekStreak struct {
	CurrentStreak       int
	LongestStreak       int
	CurrentWeekProgress int
	// most recent first, at most 12 weeks
	WeeklyHistory []WeekBucket
}

func ValidateWeeklyGoal(goal int) error {
	if goal < MinWeeklyGoal || goal > MaxWeeklyGoal {
		return ErrInvalidWeeklyGoal
	}
	return nil
}

// ParseWeeklyGoal parses a raw weekly goal value. Empty means DefaultWeeklyGoal.
func ParseWeeklyGoal(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultWeeklyGoal, nil
	}
	goal, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidWeeklyGoal
	}
	if err := ValidateWeeklyGoal(goal); err != nil {
		return 0, err
	}
	return goal, nil
}

// DateKey formats the calendar date of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// WeekStartKey returns the date key of the Monday that starts t's week.
// Sunday belongs to the week of the Monday six days before it.
func WeekStartKey(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 12, 0, 0, 0, loc)
	return monday.Format(dateKeyLayout)
}

// CalculateWeekStreak groups completed workouts into Monday-based weeks and compares
// each week with the goal. Weeks without workouts are not represented at all, so a
// gap never breaks the current streak on its own.
func CalculateWeekStreak(workouts []model.WorkoutLog, weeklyGoal int, now time.Time, loc *time.Location) WeekStreak {
	counts := make(map[string]int)
	for _, w := range workouts {
		if !w.Completed() {
			continue
		}
		counts[WeekStartKey(w.StartedAt, loc)]++
	}

	if len(counts) == 0 {
		return WeekStreak{WeeklyHistory: []WeekBucket{}}
	}

	buckets := make([]WeekBucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, WeekBucket{
			WeekStartDate: key,
			WorkoutCount:  count,
			MetGoal:       count >= weeklyGoal,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStartDate > buckets[j].WeekStartDate
	})

	streak := WeekStreak{
		CurrentWeekProgress: counts[WeekStartKey(now, loc)],
	}

	for _, b := range buckets {
		if !b.MetGoal {
			break
		}
		streak.CurrentStreak++
	}

	running := 0
	for i := len(buckets) - 1; i >= 0; i-- {
		if !buckets[i].MetGoal {
			running = 0
			continue
		}
		running++
		if running > streak.LongestStreak {
			streak.LongestStreak = running
		}
	}

	if len(buckets) > weeklyHistoryLen {
		buckets = buckets[:weeklyHistoryLen]
	}
	streak.WeeklyHistory = buckets

	return streak
}
