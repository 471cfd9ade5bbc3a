package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

func newWorkoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Aliases: []string{"w"},
		Short:   "List and show logged workouts",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List workouts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workouts, err := a.provider().Workouts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list workouts: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), workouts)
			}

			out := cmd.OutOrStdout()
			if len(workouts) == 0 {
				fmt.Fprintln(out, "No workouts found.")
				return nil
			}
			for _, w := range workouts {
				fmt.Fprintf(out, "%s %s %-24s %2d exercises  %s\n",
					faint.Sprint(w.ID),
					faint.Sprint(w.StartedAt.In(a.location).Format("2006-01-02 15:04")),
					w.Name,
					w.ExerciseCount,
					formatDuration(w.StartedAt, w.EndedAt),
				)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a workout with all its sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workout, err := a.provider().Workout(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get workout %s: %w", args[0], err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), workout)
			}
			renderWorkout(cmd.OutOrStdout(), workout, a.location)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func renderWorkout(w io.Writer, workout *model.WorkoutLog, loc *time.Location) {
	bold.Fprintln(w, workout.Name)
	fmt.Fprintf(w, "  id        %s\n", workout.ID)
	fmt.Fprintf(w, "  started   %s\n", workout.StartedAt.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  duration  %s\n", formatDuration(workout.StartedAt, workout.EndedAt))
	if workout.RoutineID != nil {
		fmt.Fprintf(w, "  routine   %s\n", *workout.RoutineID)
	}

	for _, exercise := range workout.Exercises {
		fmt.Fprintln(w)
		bold.Fprintf(w, "  %s\n", exercise.Name)
		for i, s := range exercise.Sets {
			line := fmt.Sprintf("    %d. %s kg x %d", i+1, formatWeight(s.Weight), s.Reps)
			if s.RIR != nil {
				line += " @" + strconv.Itoa(*s.RIR)
			}
			if !s.Completed {
				line = faint.Sprint(line + " (skipped)")
			}
			fmt.Fprintln(w, line)
		}
	}
}

func formatDuration(startedAt time.Time, endedAt *time.Time) string {
	if endedAt == nil {
		return "in progress"
	}
	minutes := int(endedAt.Sub(startedAt).Minutes())
	return strconv.Itoa(minutes) + " min"
}

func newRoutinesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routines",
		Aliases: []string{"r"},
		Short:   "Manage workout routines",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List routines",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			routines, err := a.provider().Routines(cmd.Context())
			if err != nil {
				return fmt.Errorf("list routines: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), routines)
			}

			out := cmd.OutOrStdout()
			if len(routines) == 0 {
				fmt.Fprintln(out, "No routines found.")
				return nil
			}
			for _, r := range routines {
				names := make([]string, 0, len(r.Exercises))
				for _, e := range r.Exercises {
					names = append(names, e.Name)
				}
				fmt.Fprintf(out, "%s %-20s %s\n", faint.Sprint(r.ID), r.Name, faint.Sprint(strings.Join(names, ", ")))
			}
			return nil
		},
	}

	var exercises []string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a routine",
		Long: `Create a routine from its planned exercises.

Each --exercise is "<name>:<sets>x<reps>", e.g. "Squat:5x5".

EXAMPLES:

  gymtrack routines add "Legs" --exercise "Squat:5x5" --exercise "Lunge:3x10"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routine := model.Routine{Name: strings.TrimSpace(args[0])}
			if routine.Name == "" {
				return fmt.Errorf("routine name is required")
			}
			for i, raw := range exercises {
				exercise, err := parseRoutineExercise(raw)
				if err != nil {
					return err
				}
				exercise.Order = i
				routine.Exercises = append(routine.Exercises, exercise)
			}

			created, err := a.provider().CreateRoutine(cmd.Context(), routine)
			if err != nil {
				return fmt.Errorf("create routine: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), created)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Added routine %s\n", created.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", created.ID)
			return nil
		},
	}
	addCmd.Flags().StringArrayVarP(&exercises, "exercise", "e", nil, `planned exercise, e.g. "Squat:5x5"`)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routine, err := a.provider().Routine(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get routine %s: %w", args[0], err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), routine)
			}

			out := cmd.OutOrStdout()
			bold.Fprintln(out, routine.Name)
			fmt.Fprintf(out, "  id       %s\n", routine.ID)
			fmt.Fprintf(out, "  updated  %s\n", routine.UpdatedAt.In(a.location).Format("2006-01-02 15:04"))
			for _, e := range routine.Exercises {
				fmt.Fprintf(out, "  %d. %-24s %dx%d\n", e.Order+1, e.Name, e.TargetSets, e.TargetReps)
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a routine, workouts that followed it are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.provider().DeleteRoutine(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete routine %s: %w", args[0], err)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Deleted routine %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, showCmd, deleteCmd)
	return cmd
}

// parseRoutineExercise reads "<name>:<sets>x<reps>".
func parseRoutineExercise(raw string) (model.RoutineExercise, error) {
	idx := strings.LastIndex(raw, ":")
	if idx <= 0 || strings.TrimSpace(raw[:idx]) == "" {
		return model.RoutineExercise{}, fmt.Errorf("invalid exercise %q: missing name", raw)
	}
	setsStr, repsStr, found := strings.Cut(strings.ToLower(strings.TrimSpace(raw[idx+1:])), "x")
	if !found {
		return model.RoutineExercise{}, fmt.Errorf("invalid exercise %q: want <sets>x<reps>", raw)
	}
	sets, err := strconv.Atoi(setsStr)
	if err != nil || sets < 0 {
		return model.RoutineExercise{}, fmt.Errorf("invalid exercise %q: bad sets", raw)
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return model.RoutineExercise{}, fmt.Errorf("invalid exercise %q: bad reps", raw)
	}
	return model.RoutineExercise{
		Name:       strings.TrimSpace(raw[:idx]),
		TargetSets: sets,
		TargetReps: reps,
	}, nil
}
