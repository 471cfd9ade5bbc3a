package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/local"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

// Reporter computes the three reports for the owner of the storage.
type Reporter interface {
	Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error)
	ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error)
	Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error)
}

type Provider interface {
	Reporter

	Routines(ctx context.Context) ([]model.Routine, error)
	Routine(ctx context.Context, id string) (*model.Routine, error)
	CreateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error)
	UpdateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error)
	DeleteRoutine(ctx context.Context, id string) error

	Workouts(ctx context.Context) ([]model.WorkoutSummary, error)
	Workout(ctx context.Context, id string) (*model.WorkoutLog, error)
	SaveWorkout(ctx context.Context, workout model.WorkoutLog) (*model.WorkoutLog, error)

	Export(ctx context.Context) (*model.SyncBundle, error)
	Import(ctx context.Context, bundle model.SyncBundle) error
}

var (
	_ Provider = (*local.Store)(nil)
	_ Provider = (*cloud.Client)(nil)
	_ Provider = (*cloud.CachedProvider)(nil)
)

var (
	ErrUnknownMode = errors.New("unknown storage mode")
	ErrNoServerURL = errors.New("server url is required for cloud storage")
	ErrNotSignedIn = errors.New("not signed in: a token is required for cloud storage")
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeCloud  Mode = "cloud"
	ModeCached Mode = "cached"
)

func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeLocal, nil
	case ModeLocal, ModeCloud, ModeCached:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q (want local, cloud or cached)", ErrUnknownMode, raw)
}

type Settings struct {
	Mode      Mode
	DBPath    string
	ServerURL string
	Token     string

	// Location keys dates and weeks of locally computed reports.
	Location   *time.Location
	HTTPClient *http.Client
}

// Handle is an opened provider plus the resources behind it.
type Handle struct {
	Provider Provider
	Store    *local.Store
	Client   *cloud.Client

	closer io.Closer
}

func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// Open builds the provider for settings.Mode. The local store is opened for
// local and cached modes, and the cloud client is built for cloud and cached modes.
func Open(settings Settings) (*Handle, error) {
	mode, err := ParseMode(string(settings.Mode))
	if err != nil {
		return nil, err
	}

	handle := &Handle{}
	if mode == ModeCloud || mode == ModeCached {
		if settings.ServerURL == "" {
			return nil, ErrNoServerURL
		}
		if settings.Token == "" {
			return nil, ErrNotSignedIn
		}
		handle.Client = cloud.NewClient(settings.ServerURL, settings.Token, settings.HTTPClient)
	}

	if mode == ModeLocal || mode == ModeCached {
		dbPath := settings.DBPath
		if dbPath == "" {
			dbPath = local.DefaultDBPath()
		}
		engine := analytics.NewEngine(analytics.WithLocation(settings.Location))
		store, err := local.Open(dbPath, local.WithEngine(engine))
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		handle.Store = store
		handle.closer = store
	}

	switch mode {
	case ModeLocal:
		handle.Provider = handle.Store
	case ModeCloud:
		handle.Provider = handle.Client
	case ModeCached:
		handle.Provider = cloud.NewCachedProvider(handle.Client, handle.Store)
	}
	return handle, nil
}
