package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime reads a user supplied time in loc, unless it carries its own offset.
func parseTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD HH:MM or RFC3339)", raw)
}

// parseSet reads "<exercise>:<weight>x<reps>[@<rir>]", e.g. "Bench Press:80x8@2".
func parseSet(raw string) (string, model.SetEntry, error) {
	idx := strings.LastIndex(raw, ":")
	if idx <= 0 {
		return "", model.SetEntry{}, fmt.Errorf("invalid set %q: missing exercise name", raw)
	}
	name := strings.TrimSpace(raw[:idx])
	spec := strings.TrimSpace(raw[idx+1:])
	if name == "" {
		return "", model.SetEntry{}, fmt.Errorf("invalid set %q: missing exercise name", raw)
	}

	var rir *int
	if at := strings.Index(spec, "@"); at >= 0 {
		value, err := strconv.Atoi(spec[at+1:])
		if err != nil || value < 0 {
			return "", model.SetEntry{}, fmt.Errorf("invalid set %q: bad rir", raw)
		}
		rir = &value
		spec = spec[:at]
	}

	weightStr, repsStr, found := strings.Cut(strings.ToLower(spec), "x")
	if !found {
		return "", model.SetEntry{}, fmt.Errorf("invalid set %q: want <weight>x<reps>", raw)
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil || weight < 0 {
		return "", model.SetEntry{}, fmt.Errorf("invalid set %q: bad weight", raw)
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return "", model.SetEntry{}, fmt.Errorf("invalid set %q: bad reps", raw)
	}

	return name, model.SetEntry{
		Weight:    weight,
		Reps:      reps,
		RIR:       rir,
		Completed: true,
	}, nil
}

// groupSets collects sets into exercises, in order of first appearance.
func groupSets(rawSets []string) ([]model.ExerciseEntry, error) {
	var exercises []model.ExerciseEntry
	index := make(map[string]int)
	for _, raw := range rawSets {
		name, set, err := parseSet(raw)
		if err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			i = len(exercises)
			index[name] = i
			exercises = append(exercises, model.ExerciseEntry{Name: name, Order: i})
		}
		exercises[i].Sets = append(exercises[i].Sets, set)
	}
	return exercises, nil
}

func newLogCmd(a *app) *cobra.Command {
	var (
		start      string
		end        string
		inProgress bool
		routineID  string
		sets       []string
	)

	cmd := &cobra.Command{
		Use:   "log <name>",
		Short: "Record a workout",
		Long: `Record a workout with its completed sets.

Each --set is "<exercise>:<weight>x<reps>", optionally followed by "@<rir>"
(reps in reserve). Sets of the same exercise are grouped in the given order.

EXAMPLES:

  gymtrack log "Push day" --start "2024-05-27 18:00" --end "2024-05-27 19:05" \
    --set "Bench Press:80x8@2" --set "Bench Press:82.5x6@1" --set "Dips:0x12"
  gymtrack log "Legs" --set "Squat:120x5" --in-progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("workout name is required")
			}

			exercises, err := groupSets(sets)
			if err != nil {
				return err
			}

			now := time.Now()
			startedAt := now
			if start != "" {
				if startedAt, err = parseTime(start, a.location); err != nil {
					return err
				}
			}

			var endedAt *time.Time
			switch {
			case inProgress && end != "":
				return errors.New("--end and --in-progress are mutually exclusive")
			case end != "":
				t, err := parseTime(end, a.location)
				if err != nil {
					return err
				}
				endedAt = &t
			case !inProgress:
				endedAt = &now
			}
			if endedAt != nil && endedAt.Before(startedAt) {
				return errors.New("workout cannot end before it starts")
			}

			workout := model.WorkoutLog{
				Name:      name,
				StartedAt: startedAt,
				EndedAt:   endedAt,
				Exercises: exercises,
			}
			if routineID != "" {
				workout.RoutineID = &routineID
			}

			saved, err := a.provider().SaveWorkout(cmd.Context(), workout)
			if err != nil {
				return fmt.Errorf("save workout: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), saved)
			}

			green.Fprintf(cmd.OutOrStdout(), "✓ Logged %s\n", saved.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", saved.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Exercises: %d\n", len(saved.Exercises))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time (default: now)")
	cmd.Flags().StringVar(&end, "end", "", "end time (default: now)")
	cmd.Flags().BoolVar(&inProgress, "in-progress", false, "leave the workout open, without an end time")
	cmd.Flags().StringVar(&routineID, "routine", "", "id of the routine followed")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, `completed set, e.g. "Bench Press:80x8@2"`)
	return cmd
}
