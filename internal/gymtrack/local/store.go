package local

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
)

// Store keeps the routines and workouts of the device owner in a single SQLite file.
// It also holds the snapshot cache used when the cloud is unreachable.
type Store struct {
	db     *sql.DB
	dbPath string
	engine *analytics.Engine

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

func WithEngine(engine *analytics.Engine) Option {
	return func(s *Store) {
		if engine != nil {
			s.engine = engine
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Open opens or creates the database at dbPath.
func Open(dbPath string, opts ...Option) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection: pragmas are per connection and :memory: databases are too
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
			_ = db.Close()
			return nil, fmt.Errorf("set database permissions: %w", err)
		}
	}

	s := &Store{
		db:     db,
		dbPath: dbPath,
		engine: analytics.NewEngine(analytics.WithLocation(time.Local)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// DataDir returns the data directory, following the XDG base directory layout.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gymtrack")
}

func DefaultDBPath() string {
	return filepath.Join(DataDir(), "gymtrack.db")
}

func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routine_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		routine_id TEXT NOT NULL,
		name TEXT NOT NULL,
		ord INTEGER NOT NULL,
		target_sets INTEGER NOT NULL DEFAULT 0,
		target_reps INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		routine_id TEXT,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id TEXT NOT NULL,
		name TEXT NOT NULL,
		ord INTEGER NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		weight REAL NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		rir INTEGER,
		completed INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (exercise_id) REFERENCES workout_exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cloud_cache (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_routines_created ON routines(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_routine_exercises_routine ON routine_exercises(routine_id);
	CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at);
	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);
	CREATE INDEX IF NOT EXISTS idx_workout_sets_exercise ON workout_sets(exercise_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// timeLayout is fixed width, so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func formatTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTimePtr(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
