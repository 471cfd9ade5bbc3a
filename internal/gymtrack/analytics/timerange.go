package analytics

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

type TimeRange string

const (
	Range7Days  TimeRange = "7d"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	RangeAll    TimeRange = "all"

	DefaultTimeRange = Range30Days

	day = 24 * time.Hour
)

// ParseTimeRange maps a raw request value to a TimeRange. An empty value means the
// default (30d); unknown tokens are kept as-is and behave like RangeAll.
func ParseTimeRange(raw string) TimeRange {
	if raw == "" {
		return DefaultTimeRange
	}
	return TimeRange(raw)
}

// Cutoff returns the earliest start time included by the range.
func (r TimeRange) Cutoff(now time.Time) time.Time {
	switch r {
	case Range7Days:
		return now.Add(-7 * day)
	case Range30Days:
		return now.Add(-30 * day)
	case Range90Days:
		return now.Add(-90 * day)
	default:
		return time.Unix(0, 0).UTC()
	}
}

// FilterByTimeRange keeps the workouts started at or after the range cutoff.
// Input order is preserved and no upper bound is applied.
func FilterByTimeRange(workouts []model.WorkoutLog, r TimeRange, now time.Time) []model.WorkoutLog {
	cutoff := r.Cutoff(now)
	filtered := make([]model.WorkoutLog, 0, len(workouts))
	for _, w := range workouts {
		if !w.StartedAt.Before(cutoff) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
