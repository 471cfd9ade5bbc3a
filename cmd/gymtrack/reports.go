package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func newStatsCmd(a *app) *cobra.Command {
	var timeRange string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Workout totals, volume and per exercise stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.provider().Stats(cmd.Context(), analytics.ParseTimeRange(timeRange))
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderStats(cmd.OutOrStdout(), report, a.location)
			return nil
		},
	}
	cmd.Flags().StringVarP(&timeRange, "range", "r", string(analytics.DefaultTimeRange), "7d, 30d, 90d or all")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var timeRange string
	cmd := &cobra.Command{
		Use:   "history <exercise>",
		Short: "Progress of one exercise and its personal record",
		Long: `History shows one line per workout containing the exercise.

Names are matched exactly, "Bench Press" and "bench press" are different exercises.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.provider().ExerciseHistory(cmd.Context(), args[0], analytics.ParseTimeRange(timeRange))
			if err != nil {
				return fmt.Errorf("exercise history: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderHistory(cmd.OutOrStdout(), report, a)
			return nil
		},
	}
	cmd.Flags().StringVarP(&timeRange, "range", "r", string(analytics.DefaultTimeRange), "7d, 30d, 90d or all")
	return cmd
}

func newStreakCmd(a *app) *cobra.Command {
	var goal string
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Weekly streak, this week's progress and a 12 week calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			weeklyGoal, err := analytics.ParseWeeklyGoal(goal)
			if err != nil {
				return err
			}
			report, err := a.provider().Streak(cmd.Context(), weeklyGoal)
			if err != nil {
				return fmt.Errorf("streak: %w", err)
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderStreak(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&goal, "goal", "g", strconv.Itoa(analytics.DefaultWeeklyGoal), "workouts per week, 1 to 7")
	return cmd
}

func renderStats(w io.Writer, report analytics.StatsReport, loc *time.Location) {
	bold.Fprintln(w, "Workouts")
	fmt.Fprintf(w, "  total         %d\n", report.TotalWorkouts)
	fmt.Fprintf(w, "  avg duration  %d min\n", report.AvgDuration)
	fmt.Fprintf(w, "  total volume  %d kg\n", report.TotalVolume)

	if len(report.WorkoutsByWeek) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Per week")
		for _, week := range report.WorkoutsByWeek {
			fmt.Fprintf(w, "  %-9s %s %d\n", week.Week, green.Sprint(strings.Repeat("■", week.Count)), week.Count)
		}
	}

	if len(report.ExerciseStats) == 0 {
		return
	}
	fmt.Fprintln(w)
	bold.Fprintln(w, "Exercises")
	for _, stat := range report.ExerciseStats {
		fmt.Fprintf(w, "  %-24s %3d sets  max %6s kg  avg %4d kg  %s\n",
			stat.ExerciseName,
			stat.TotalSets,
			formatWeight(stat.MaxWeight),
			stat.AvgWeight,
			faint.Sprint("last "+stat.LastPerformed.In(loc).Format("2006-01-02")),
		)
	}
}

func renderHistory(w io.Writer, report analytics.ExerciseHistoryReport, a *app) {
	bold.Fprintln(w, report.ExerciseName)
	if len(report.History) == 0 {
		fmt.Fprintln(w, "  no workouts in range")
		return
	}

	for _, point := range report.History {
		sets := make([]string, 0, len(point.Sets))
		for _, s := range point.Sets {
			set := formatWeight(s.Weight) + "x" + strconv.Itoa(s.Reps)
			if s.RIR != nil {
				set += "@" + strconv.Itoa(*s.RIR)
			}
			sets = append(sets, set)
		}
		fmt.Fprintf(w, "  %s  max %6s  avg %4d  %2d sets %3d reps  %s\n",
			faint.Sprint(point.Date.In(a.location).Format("2006-01-02")),
			formatWeight(point.MaxWeight),
			point.AvgWeight,
			point.TotalSets,
			point.TotalReps,
			strings.Join(sets, " "),
		)
	}

	if pr := report.PersonalRecord; pr != nil {
		fmt.Fprintln(w)
		green.Fprintf(w, "  PR %s kg x %d on %s\n",
			formatWeight(pr.Weight), pr.Reps, pr.Date.In(a.location).Format("2006-01-02"))
	}
}

// heatmap shades for intensity 0..4
var heatShades = []string{"·", "░", "▒", "▓", "█"}

func renderStreak(w io.Writer, report analytics.StreakReport) {
	bold.Fprintln(w, "Streak")
	fmt.Fprintf(w, "  current    %d weeks\n", report.CurrentStreak)
	fmt.Fprintf(w, "  longest    %d weeks\n", report.LongestStreak)
	progress := fmt.Sprintf("%d/%d", report.CurrentWeekProgress, report.WeeklyGoal)
	if report.CurrentWeekProgress >= report.WeeklyGoal {
		progress = green.Sprint(progress)
	}
	fmt.Fprintf(w, "  this week  %s\n", progress)

	if len(report.WeeklyHistory) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Weeks")
		for _, week := range report.WeeklyHistory {
			mark := red.Sprint("✗")
			if week.MetGoal {
				mark = green.Sprint("✓")
			}
			fmt.Fprintf(w, "  %s  %s %d\n", week.WeekStartDate, mark, week.WorkoutCount)
		}
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Last 12 weeks")
	for row := 0; row*7 < len(report.CalendarData); row++ {
		days := report.CalendarData[row*7 : min((row+1)*7, len(report.CalendarData))]
		var line strings.Builder
		for _, day := range days {
			line.WriteString(heatShades[max(0, min(day.Intensity, len(heatShades)-1))])
			line.WriteByte(' ')
		}
		fmt.Fprintf(w, "  %s  %s\n", faint.Sprint(days[0].Date), green.Sprint(line.String()))
	}
}

func formatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}
