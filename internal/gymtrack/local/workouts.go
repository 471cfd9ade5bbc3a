package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

var ErrNotFound = errors.New("not found")

const workoutColumns = `
	SELECT w.id, w.name, w.routine_id, w.started_at, w.ended_at,
		e.id, e.name, e.ord,
		s.weight, s.reps, s.rir, s.completed
	FROM workouts w
	LEFT JOIN workout_exercises e ON e.workout_id = w.id
	LEFT JOIN workout_sets s ON s.exercise_id = e.id`

// AllWorkouts returns every stored workout, ascending by start time.
// The store holds a single user's data, so userID is not used.
func (s *Store) AllWorkouts(ctx context.Context, _ string) ([]model.WorkoutLog, error) {
	return s.queryWorkouts(ctx, s.db, workoutColumns+` ORDER BY w.started_at ASC, w.id, e.ord, e.id, s.id`)
}

// Workouts lists summaries, most recent first.
func (s *Store) Workouts(ctx context.Context) ([]model.WorkoutSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.name, w.routine_id, w.started_at, w.ended_at, COUNT(e.id)
		FROM workouts w
		LEFT JOIN workout_exercises e ON e.workout_id = w.id
		GROUP BY w.id
		ORDER BY w.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.WorkoutSummary, 0)
	for rows.Next() {
		var (
			summary   model.WorkoutSummary
			routineID sql.NullString
			startedAt string
			endedAt   sql.NullString
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &routineID, &startedAt, &endedAt, &summary.ExerciseCount); err != nil {
			return nil, fmt.Errorf("scan workout summary: %w", err)
		}
		if summary.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if summary.EndedAt, err = parseTimePtr(endedAt); err != nil {
			return nil, err
		}
		summary.RoutineID = stringPtr(routineID)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) Workout(ctx context.Context, id string) (*model.WorkoutLog, error) {
	workouts, err := s.queryWorkouts(ctx, s.db, workoutColumns+` WHERE w.id = ? ORDER BY e.ord, e.id, s.id`, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrNotFound
	}
	return &workouts[0], nil
}

// SaveWorkout stores w, replacing any workout with the same id.
// An empty id gets a new one. A routine id that does not exist locally is dropped.
func (s *Store) SaveWorkout(ctx context.Context, w model.WorkoutLog) (*model.WorkoutLog, error) {
	if strings.TrimSpace(w.Name) == "" {
		return nil, errors.New("workout name is required")
	}
	if err := w.ValidateSets(); err != nil {
		return nil, err
	}
	if w.ID == "" {
		w.ID = s.newID()
	}
	if w.StartedAt.IsZero() {
		w.StartedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if w.RoutineID != nil {
		exists, err := rowExists(ctx, tx, `SELECT 1 FROM routines WHERE id = ?`, *w.RoutineID)
		if err != nil {
			return nil, err
		}
		if !exists {
			w.RoutineID = nil
		}
	}
	if err := upsertWorkout(ctx, tx, w); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.Workout(ctx, w.ID)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) queryWorkouts(ctx context.Context, q queryer, query string, args ...any) ([]model.WorkoutLog, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	workouts := make([]model.WorkoutLog, 0)
	var lastExerciseID int64 = -1
	for rows.Next() {
		var (
			w         model.WorkoutLog
			routineID sql.NullString
			startedAt string
			endedAt   sql.NullString
			exID      sql.NullInt64
			exName    sql.NullString
			exOrder   sql.NullInt64
			weight    sql.NullFloat64
			reps      sql.NullInt64
			rir       sql.NullInt64
			completed sql.NullBool
		)
		if err := rows.Scan(
			&w.ID, &w.Name, &routineID, &startedAt, &endedAt,
			&exID, &exName, &exOrder,
			&weight, &reps, &rir, &completed,
		); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}

		if len(workouts) == 0 || workouts[len(workouts)-1].ID != w.ID {
			if w.StartedAt, err = parseTime(startedAt); err != nil {
				return nil, err
			}
			if w.EndedAt, err = parseTimePtr(endedAt); err != nil {
				return nil, err
			}
			w.RoutineID = stringPtr(routineID)
			w.Exercises = make([]model.ExerciseEntry, 0)
			workouts = append(workouts, w)
			lastExerciseID = -1
		}
		current := &workouts[len(workouts)-1]

		if !exID.Valid {
			continue
		}
		if exID.Int64 != lastExerciseID {
			current.Exercises = append(current.Exercises, model.ExerciseEntry{
				Name:  exName.String,
				Order: int(exOrder.Int64),
				Sets:  make([]model.SetEntry, 0),
			})
			lastExerciseID = exID.Int64
		}

		if !weight.Valid {
			continue
		}
		set := model.SetEntry{
			Weight:    weight.Float64,
			Reps:      int(reps.Int64),
			Completed: completed.Bool,
		}
		if rir.Valid {
			v := int(rir.Int64)
			set.RIR = &v
		}
		exercise := &current.Exercises[len(current.Exercises)-1]
		exercise.Sets = append(exercise.Sets, set)
	}

	return workouts, rows.Err()
}

func upsertWorkout(ctx context.Context, tx execer, w model.WorkoutLog) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO workouts (id, name, routine_id, started_at, ended_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			routine_id = excluded.routine_id,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at`,
		w.ID, w.Name, nullString(w.RoutineID), formatTime(w.StartedAt), formatTimePtr(w.EndedAt),
	); err != nil {
		return fmt.Errorf("upsert workout %s: %w", w.ID, err)
	}

	// sets go with their exercises through the cascade
	if _, err := tx.ExecContext(ctx, `DELETE FROM workout_exercises WHERE workout_id = ?`, w.ID); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}

	for _, exercise := range w.Exercises {
		var exerciseID int64
		if err := tx.QueryRowContext(
			ctx,
			`INSERT INTO workout_exercises (workout_id, name, ord) VALUES (?, ?, ?) RETURNING id`,
			w.ID, exercise.Name, exercise.Order,
		).Scan(&exerciseID); err != nil {
			return fmt.Errorf("insert workout exercise: %w", err)
		}

		for _, set := range exercise.Sets {
			var rir sql.NullInt64
			if set.RIR != nil {
				rir = sql.NullInt64{Int64: int64(*set.RIR), Valid: true}
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO workout_sets (exercise_id, weight, reps, rir, completed) VALUES (?, ?, ?, ?, ?)`,
				exerciseID, set.Weight, set.Reps, rir, set.Completed,
			); err != nil {
				return fmt.Errorf("insert workout set: %w", err)
			}
		}
	}

	return nil
}

func rowExists(ctx context.Context, tx execer, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check row: %w", err)
	}
	return true, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
