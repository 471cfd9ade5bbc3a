package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrRoutineNotFound = errors.New("routine not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const workoutsSelect = `
SELECT w.id, w.name, w.routine_id, w.started_at, w.ended_at,
       e.id, e.name, e.ord,
       s.weight, s.reps, s.rir, s.completed
FROM workout w
    LEFT JOIN workout_exercise e ON e.workout_id = w.id
    LEFT JOIN workout_set s ON s.exercise_id = e.id
WHERE w.user_id = $1 %s
ORDER BY w.started_at %s, w.id, e.ord, e.id, s.id;`

// AllWorkouts returns every workout of the user with exercises and sets, oldest first.
func (r *Repo) AllWorkouts(ctx context.Context, userID string) (_ []model.WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	workouts, err := r.queryWorkouts(ctx, r.db, fmt.Sprintf(workoutsSelect, "", "ASC"), userID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

func (r *Repo) ListWorkouts(ctx context.Context, userID string) (_ []model.WorkoutSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT w.id, w.name, w.routine_id, w.started_at, w.ended_at, COUNT(e.id)
			FROM workout w
				LEFT JOIN workout_exercise e ON e.workout_id = w.id
			WHERE w.user_id = $1
			GROUP BY w.id
			ORDER BY w.started_at DESC, w.id;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.WorkoutSummary, 0)
	for rows.Next() {
		var s model.WorkoutSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.RoutineID, &s.StartedAt, &s.EndedAt, &s.ExerciseCount); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		s.StartedAt = s.StartedAt.UTC()
		s.EndedAt = utcPtr(s.EndedAt)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *Repo) GetWorkout(ctx context.Context, userID, id string) (_ *model.WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	workouts, err := r.queryWorkouts(ctx, r.db, fmt.Sprintf(workoutsSelect, "AND w.id = $2", "ASC"), userID, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrWorkoutNotFound
	}
	return &workouts[0], nil
}

func (r *Repo) CreateWorkout(ctx context.Context, userID string, workout model.WorkoutLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workout.ID))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return insertWorkout(ctx, tx, userID, workout)
	})
}

const routinesSelect = `
SELECT r.id, r.name, r.created_at, r.updated_at,
       e.name, e.ord, e.target_sets, e.target_reps
FROM routine r
    LEFT JOIN routine_exercise e ON e.routine_id = r.id
WHERE r.user_id = $1 %s
ORDER BY r.created_at DESC, r.id, e.ord, e.id;`

// ListRoutines returns the routines of the user, newest first.
func (r *Repo) ListRoutines(ctx context.Context, userID string) (_ []model.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.queryRoutines(ctx, r.db, fmt.Sprintf(routinesSelect, ""), userID)
}

func (r *Repo) GetRoutine(ctx context.Context, userID, id string) (_ *model.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	routines, err := r.queryRoutines(ctx, r.db, fmt.Sprintf(routinesSelect, "AND r.id = $2"), userID, id)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, ErrRoutineNotFound
	}
	return &routines[0], nil
}

func (r *Repo) CreateRoutine(ctx context.Context, userID string, routine model.Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routine.ID))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return insertRoutine(ctx, tx, userID, routine)
	})
}

// UpdateRoutine replaces the name and the exercise list of an existing routine.
func (r *Repo) UpdateRoutine(ctx context.Context, userID string, routine model.Routine) (_ *model.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routine.ID))

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`UPDATE routine SET name = $1, updated_at = $2 WHERE id = $3 AND user_id = $4 RETURNING created_at;`,
			routine.Name, routine.UpdatedAt, routine.ID, userID,
		).Scan(&routine.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRoutineNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM routine_exercise WHERE routine_id = $1;`, routine.ID); err != nil {
			return fmt.Errorf("delete routine exercises: %w", err)
		}
		return insertRoutineExercises(ctx, tx, routine)
	})
	if err != nil {
		return nil, err
	}

	routine.CreatedAt = routine.CreatedAt.UTC()
	return &routine, nil
}

func (r *Repo) DeleteRoutine(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM routine WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

// Import stores the whole bundle in one transaction: either everything is saved or nothing is.
func (r *Repo) Import(ctx context.Context, userID string, bundle model.SyncBundle) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sync.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("routines.count", len(bundle.Routines)),
		attribute.Int("workouts.count", len(bundle.Workouts)),
	)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, routine := range bundle.Routines {
			if err := insertRoutine(ctx, tx, userID, routine); err != nil {
				return err
			}
		}
		for _, workout := range bundle.Workouts {
			if err := insertWorkout(ctx, tx, userID, workout); err != nil {
				return err
			}
		}
		return nil
	})
}

// Export returns routines newest first and workouts by start time, newest first.
func (r *Repo) Export(ctx context.Context, userID string) (_ *model.SyncBundle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sync.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	bundle := &model.SyncBundle{}
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
		var err error
		if bundle.Routines, err = r.queryRoutines(ctx, tx, fmt.Sprintf(routinesSelect, ""), userID); err != nil {
			return err
		}
		bundle.Workouts, err = r.queryWorkouts(ctx, tx, fmt.Sprintf(workoutsSelect, "", "DESC"), userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// Clear deletes all routines and workouts of the user.
func (r *Repo) Clear(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sync.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workout WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("delete workouts: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM routine WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("delete routines: %w", err)
		}
		return nil
	})
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *Repo) queryWorkouts(ctx context.Context, q querier, query string, args ...any) ([]model.WorkoutLog, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]model.WorkoutLog, 0)
	lastExerciseID := -1
	for rows.Next() {
		var (
			w         model.WorkoutLog
			exID      *int
			exName    *string
			exOrder   *int
			weight    *float64
			reps      *int
			rir       *int
			completed *bool
		)
		if err := rows.Scan(
			&w.ID, &w.Name, &w.RoutineID, &w.StartedAt, &w.EndedAt,
			&exID, &exName, &exOrder,
			&weight, &reps, &rir, &completed,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(workouts) == 0 || workouts[len(workouts)-1].ID != w.ID {
			w.StartedAt = w.StartedAt.UTC()
			w.EndedAt = utcPtr(w.EndedAt)
			w.Exercises = make([]model.ExerciseEntry, 0)
			workouts = append(workouts, w)
			lastExerciseID = -1
		}
		current := &workouts[len(workouts)-1]

		if exID == nil {
			continue
		}
		if *exID != lastExerciseID {
			current.Exercises = append(current.Exercises, model.ExerciseEntry{
				Name:  *exName,
				Order: *exOrder,
				Sets:  make([]model.SetEntry, 0),
			})
			lastExerciseID = *exID
		}

		if weight == nil {
			continue
		}
		exercise := &current.Exercises[len(current.Exercises)-1]
		exercise.Sets = append(exercise.Sets, model.SetEntry{
			Weight:    *weight,
			Reps:      *reps,
			RIR:       rir,
			Completed: *completed,
		})
	}

	return workouts, rows.Err()
}

func (r *Repo) queryRoutines(ctx context.Context, q querier, query string, args ...any) ([]model.Routine, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]model.Routine, 0)
	for rows.Next() {
		var (
			routine    model.Routine
			exName     *string
			exOrder    *int
			targetSets *int
			targetReps *int
		)
		if err := rows.Scan(
			&routine.ID, &routine.Name, &routine.CreatedAt, &routine.UpdatedAt,
			&exName, &exOrder, &targetSets, &targetReps,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(routines) == 0 || routines[len(routines)-1].ID != routine.ID {
			routine.CreatedAt = routine.CreatedAt.UTC()
			routine.UpdatedAt = routine.UpdatedAt.UTC()
			routine.Exercises = make([]model.RoutineExercise, 0)
			routines = append(routines, routine)
		}
		if exName == nil {
			continue
		}

		current := &routines[len(routines)-1]
		current.Exercises = append(current.Exercises, model.RoutineExercise{
			Name:       *exName,
			Order:      *exOrder,
			TargetSets: *targetSets,
			TargetReps: *targetReps,
		})
	}

	return routines, rows.Err()
}

func insertWorkout(ctx context.Context, tx pgx.Tx, userID string, workout model.WorkoutLog) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO workout (id, user_id, routine_id, name, started_at, ended_at) VALUES ($1, $2, $3, $4, $5, $6);`,
		workout.ID, userID, workout.RoutineID, workout.Name, workout.StartedAt, workout.EndedAt,
	); err != nil {
		if workout.RoutineID != nil && pkg.IsForeignKeyViolationError(err) {
			return fmt.Errorf("insert workout %s: %w", workout.ID, ErrRoutineNotFound)
		}
		return fmt.Errorf("insert workout %s: %w", workout.ID, err)
	}

	for _, exercise := range workout.Exercises {
		var exerciseID int
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO workout_exercise (workout_id, name, ord) VALUES ($1, $2, $3) RETURNING id;`,
			workout.ID, exercise.Name, exercise.Order,
		).Scan(&exerciseID); err != nil {
			return fmt.Errorf("insert workout exercise: %w", err)
		}

		if len(exercise.Sets) == 0 {
			continue
		}
		setRows := make([][]any, 0, len(exercise.Sets))
		for _, s := range exercise.Sets {
			setRows = append(setRows, []any{exerciseID, s.Weight, s.Reps, s.RIR, s.Completed})
		}
		if _, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"workout_set"},
			[]string{"exercise_id", "weight", "reps", "rir", "completed"},
			pgx.CopyFromRows(setRows),
		); err != nil {
			return fmt.Errorf("copy workout sets: %w", err)
		}
	}

	return nil
}

func insertRoutine(ctx context.Context, tx pgx.Tx, userID string, routine model.Routine) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO routine (id, user_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5);`,
		routine.ID, userID, routine.Name, routine.CreatedAt, routine.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert routine %s: %w", routine.ID, err)
	}
	return insertRoutineExercises(ctx, tx, routine)
}

func insertRoutineExercises(ctx context.Context, tx pgx.Tx, routine model.Routine) error {
	if len(routine.Exercises) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range routine.Exercises {
		batch.Queue(
			`INSERT INTO routine_exercise (routine_id, name, ord, target_sets, target_reps) VALUES ($1, $2, $3, $4, $5);`,
			routine.ID, e.Name, e.Order, e.TargetSets, e.TargetReps,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range routine.Exercises {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert routine exercise: %w", err)
		}
	}
	return results.Close()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
