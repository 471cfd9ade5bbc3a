package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

const routineColumns = `
	SELECT r.id, r.name, r.created_at, r.updated_at,
		e.name, e.ord, e.target_sets, e.target_reps
	FROM routines r
	LEFT JOIN routine_exercises e ON e.routine_id = r.id`

// Routines lists routines with their exercises, newest first.
func (s *Store) Routines(ctx context.Context) ([]model.Routine, error) {
	return s.queryRoutines(ctx, s.db, routineColumns+` ORDER BY r.created_at DESC, r.id, e.ord, e.id`)
}

func (s *Store) Routine(ctx context.Context, id string) (*model.Routine, error) {
	routines, err := s.queryRoutines(ctx, s.db, routineColumns+` WHERE r.id = ? ORDER BY e.ord, e.id`, id)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, ErrNotFound
	}
	return &routines[0], nil
}

func (s *Store) CreateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	if strings.TrimSpace(routine.Name) == "" {
		return nil, errors.New("routine name is required")
	}
	if routine.ID == "" {
		routine.ID = s.newID()
	}
	now := s.now()
	routine.CreatedAt = now
	routine.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertRoutine(ctx, tx, routine); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Routine(ctx, routine.ID)
}

// UpdateRoutine replaces the name and exercises of an existing routine.
func (s *Store) UpdateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	if strings.TrimSpace(routine.Name) == "" {
		return nil, errors.New("routine name is required")
	}
	existing, err := s.Routine(ctx, routine.ID)
	if err != nil {
		return nil, err
	}
	routine.CreatedAt = existing.CreatedAt
	routine.UpdatedAt = s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertRoutine(ctx, tx, routine); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Routine(ctx, routine.ID)
}

func (s *Store) DeleteRoutine(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryRoutines(ctx context.Context, q queryer, query string, args ...any) ([]model.Routine, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query routines: %w", err)
	}
	defer rows.Close()

	routines := make([]model.Routine, 0)
	for rows.Next() {
		var (
			routine    model.Routine
			createdAt  string
			updatedAt  string
			exName     *string
			exOrder    *int
			targetSets *int
			targetReps *int
		)
		if err := rows.Scan(
			&routine.ID, &routine.Name, &createdAt, &updatedAt,
			&exName, &exOrder, &targetSets, &targetReps,
		); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}

		if len(routines) == 0 || routines[len(routines)-1].ID != routine.ID {
			if routine.CreatedAt, err = parseTime(createdAt); err != nil {
				return nil, err
			}
			if routine.UpdatedAt, err = parseTime(updatedAt); err != nil {
				return nil, err
			}
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

// upsertRoutine never deletes the routine row itself, so workouts keep their link.
func upsertRoutine(ctx context.Context, tx execer, routine model.Routine) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO routines (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		routine.ID, routine.Name, formatTime(routine.CreatedAt), formatTime(routine.UpdatedAt),
	); err != nil {
		return fmt.Errorf("upsert routine %s: %w", routine.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_exercises WHERE routine_id = ?`, routine.ID); err != nil {
		return fmt.Errorf("delete routine exercises: %w", err)
	}
	for _, e := range routine.Exercises {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO routine_exercises (routine_id, name, ord, target_sets, target_reps) VALUES (?, ?, ?, ?, ?)`,
			routine.ID, e.Name, e.Order, e.TargetSets, e.TargetReps,
		); err != nil {
			return fmt.Errorf("insert routine exercise: %w", err)
		}
	}
	return nil
}
