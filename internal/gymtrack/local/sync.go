package local

import (
	"context"
	"fmt"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

// Export returns everything stored, routines newest first and workouts most recent first.
func (s *Store) Export(ctx context.Context) (*model.SyncBundle, error) {
	routines, err := s.Routines(ctx)
	if err != nil {
		return nil, err
	}
	workouts, err := s.queryWorkouts(ctx, s.db, workoutColumns+` ORDER BY w.started_at DESC, w.id, e.ord, e.id, s.id`)
	if err != nil {
		return nil, err
	}
	return &model.SyncBundle{Routines: routines, Workouts: workouts}, nil
}

// Import writes the bundle in one transaction. Records keep their ids,
// and a record with a known id replaces the stored one.
func (s *Store) Import(ctx context.Context, bundle model.SyncBundle) error {
	for _, w := range bundle.Workouts {
		if err := w.ValidateSets(); err != nil {
			return fmt.Errorf("workout %s: %w", w.ID, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, routine := range bundle.Routines {
		if err := upsertRoutine(ctx, tx, routine); err != nil {
			return err
		}
	}
	for _, w := range bundle.Workouts {
		if w.RoutineID != nil {
			exists, err := rowExists(ctx, tx, `SELECT 1 FROM routines WHERE id = ?`, *w.RoutineID)
			if err != nil {
				return err
			}
			if !exists {
				w.RoutineID = nil
			}
		}
		if err := upsertWorkout(ctx, tx, w); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Replace swaps the stored routines and workouts for the bundle.
func (s *Store) Replace(ctx context.Context, bundle model.SyncBundle) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	return s.Import(ctx, bundle)
}

// Clear deletes all routines and workouts. The cloud cache is kept.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workouts`); err != nil {
		return fmt.Errorf("delete workouts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM routines`); err != nil {
		return fmt.Errorf("delete routines: %w", err)
	}
	return tx.Commit()
}
