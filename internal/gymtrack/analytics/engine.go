package analytics

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type StatsReport struct {
	TotalWorkouts  int            `json:"totalWorkouts"`
	AvgDuration    int            `json:"avgDuration"`
	TotalVolume    int            `json:"totalVolume"`
	WorkoutsByWeek []WeekCount    `json:"workoutsByWeek"`
	ExerciseStats  []ExerciseStat `json:"exerciseStats"`
}

type ExerciseHistoryReport struct {
	ExerciseName   string             `json:"exerciseName"`
	History        []WorkoutDataPoint `json:"history"`
	PersonalRecord *PersonalRecord    `json:"personalRecord"`
}

type StreakReport struct {
	CurrentStreak       int           `json:"currentStreak"`
	LongestStreak       int           `json:"longestStreak"`
	WeeklyGoal          int           `json:"weeklyGoal"`
	CurrentWeekProgress int           `json:"currentWeekProgress"`
	CalendarData        []CalendarDay `json:"calendarData"`
	WeeklyHistory       []WeekBucket  `json:"weeklyHistory"`
}

// Engine builds the three reports from an already loaded workout collection.
// It holds no state besides the clock and the location used for day and week keys,
// so one Engine can serve concurrent callers.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the time zone in which dates and weeks are keyed. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		loc: time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Stats expects workouts sorted by start time, ascending.
func (e *Engine) Stats(workouts []model.WorkoutLog, timeRange TimeRange) StatsReport {
	inRange := FilterByTimeRange(workouts, timeRange, e.now())
	volume := AggregateVolume(inRange)
	return StatsReport{
		TotalWorkouts:  volume.TotalWorkouts,
		AvgDuration:    volume.AvgDuration,
		TotalVolume:    volume.TotalVolume,
		WorkoutsByWeek: BucketByWeekOfYear(inRange, e.loc),
		ExerciseStats:  AggregateExerciseStats(inRange),
	}
}

func (e *Engine) ExerciseHistory(workouts []model.WorkoutLog, exerciseName string, timeRange TimeRange) ExerciseHistoryReport {
	inRange := FilterByTimeRange(workouts, timeRange, e.now())
	history, pr := BuildExerciseHistory(inRange, exerciseName)
	return ExerciseHistoryReport{
		ExerciseName:   exerciseName,
		History:        history,
		PersonalRecord: pr,
	}
}

// Streak always looks at the full history, regardless of any display range.
func (e *Engine) Streak(workouts []model.WorkoutLog, weeklyGoal int) (StreakReport, error) {
	if err := ValidateWeeklyGoal(weeklyGoal); err != nil {
		return StreakReport{}, err
	}

	now := e.now()
	streak := CalculateWeekStreak(workouts, weeklyGoal, now, e.loc)
	return StreakReport{
		CurrentStreak:       streak.CurrentStreak,
		LongestStreak:       streak.LongestStreak,
		WeeklyGoal:          weeklyGoal,
		CurrentWeekProgress: streak.CurrentWeekProgress,
		CalendarData:        BuildCalendarHeatmap(workouts, now, e.loc),
		WeeklyHistory:       streak.WeeklyHistory,
	}, nil
}
