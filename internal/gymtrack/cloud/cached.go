package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

// SnapshotStore keeps the last good copy of each cloud response.
type SnapshotStore interface {
	CachePut(ctx context.Context, key string, payload []byte) error
	CacheGet(ctx context.Context, key string) ([]byte, time.Time, error)
}

// CachedProvider reads from the server first and refreshes the snapshot store.
// When the server is unreachable or failing, reads fall back to the stored snapshot.
// Writes always go to the server.
type CachedProvider struct {
	client *Client
	cache  SnapshotStore
}

func NewCachedProvider(client *Client, cache SnapshotStore) *CachedProvider {
	return &CachedProvider{
		client: client,
		cache:  cache,
	}
}

func (p *CachedProvider) Routines(ctx context.Context) ([]model.Routine, error) {
	return cachedRead(ctx, p, "routines", p.client.Routines)
}

func (p *CachedProvider) Routine(ctx context.Context, id string) (*model.Routine, error) {
	routine, err := cachedRead(ctx, p, "routine/"+id, func(ctx context.Context) (*model.Routine, error) {
		return p.client.Routine(ctx, id)
	})
	if err == nil || !fallbackAllowed(err) {
		return routine, err
	}

	// the routine may still be in the cached list
	routines, listErr := readSnapshot[[]model.Routine](ctx, p, "routines")
	if listErr != nil {
		return nil, err
	}
	for i := range routines {
		if routines[i].ID == id {
			return &routines[i], nil
		}
	}
	return nil, err
}

func (p *CachedProvider) CreateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	created, err := p.client.CreateRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	p.rememberRoutine(ctx, *created)
	return created, nil
}

func (p *CachedProvider) UpdateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	updated, err := p.client.UpdateRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	p.rememberRoutine(ctx, *updated)
	return updated, nil
}

func (p *CachedProvider) DeleteRoutine(ctx context.Context, id string) error {
	if err := p.client.DeleteRoutine(ctx, id); err != nil {
		return err
	}
	routines, err := readSnapshot[[]model.Routine](ctx, p, "routines")
	if err != nil {
		return nil
	}
	kept := make([]model.Routine, 0, len(routines))
	for _, r := range routines {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	p.store(ctx, "routines", kept)
	return nil
}

func (p *CachedProvider) Workouts(ctx context.Context) ([]model.WorkoutSummary, error) {
	return cachedRead(ctx, p, "workouts", p.client.Workouts)
}

func (p *CachedProvider) Workout(ctx context.Context, id string) (*model.WorkoutLog, error) {
	return cachedRead(ctx, p, "workout/"+id, func(ctx context.Context) (*model.WorkoutLog, error) {
		return p.client.Workout(ctx, id)
	})
}

func (p *CachedProvider) SaveWorkout(ctx context.Context, workout model.WorkoutLog) (*model.WorkoutLog, error) {
	saved, err := p.client.SaveWorkout(ctx, workout)
	if err != nil {
		return nil, err
	}

	p.store(ctx, "workout/"+saved.ID, saved)
	if summaries, err := readSnapshot[[]model.WorkoutSummary](ctx, p, "workouts"); err == nil {
		// the list is most recent first
		summaries = append([]model.WorkoutSummary{model.Summarize(*saved)}, summaries...)
		p.store(ctx, "workouts", summaries)
	}
	return saved, nil
}

func (p *CachedProvider) Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error) {
	return cachedRead(ctx, p, "stats/"+string(timeRange), func(ctx context.Context) (analytics.StatsReport, error) {
		return p.client.Stats(ctx, timeRange)
	})
}

func (p *CachedProvider) ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error) {
	key := fmt.Sprintf("history/%s/%s", timeRange, exerciseName)
	return cachedRead(ctx, p, key, func(ctx context.Context) (analytics.ExerciseHistoryReport, error) {
		return p.client.ExerciseHistory(ctx, exerciseName, timeRange)
	})
}

func (p *CachedProvider) Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error) {
	if err := analytics.ValidateWeeklyGoal(weeklyGoal); err != nil {
		return analytics.StreakReport{}, err
	}
	return cachedRead(ctx, p, fmt.Sprintf("streak/%d", weeklyGoal), func(ctx context.Context) (analytics.StreakReport, error) {
		return p.client.Streak(ctx, weeklyGoal)
	})
}

func (p *CachedProvider) Export(ctx context.Context) (*model.SyncBundle, error) {
	return cachedRead(ctx, p, "export", p.client.Export)
}

func (p *CachedProvider) Import(ctx context.Context, bundle model.SyncBundle) error {
	return p.client.Import(ctx, bundle)
}

func (p *CachedProvider) rememberRoutine(ctx context.Context, routine model.Routine) {
	p.store(ctx, "routine/"+routine.ID, routine)

	routines, err := readSnapshot[[]model.Routine](ctx, p, "routines")
	if err != nil {
		return
	}
	replaced := false
	for i := range routines {
		if routines[i].ID == routine.ID {
			routines[i] = routine
			replaced = true
		}
	}
	if !replaced {
		// newest first
		routines = append([]model.Routine{routine}, routines...)
	}
	p.store(ctx, "routines", routines)
}

func (p *CachedProvider) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Errorf("cached provider: marshal %s: %s", key, err)
		return
	}
	if err := p.cache.CachePut(ctx, key, payload); err != nil {
		log.Errorf("cached provider: store %s: %s", key, err)
	}
}

func readSnapshot[T any](ctx context.Context, p *CachedProvider, key string) (T, error) {
	var value T
	payload, _, err := p.cache.CacheGet(ctx, key)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(payload, &value); err != nil {
		return value, fmt.Errorf("unmarshal cached %s: %w", key, err)
	}
	return value, nil
}

func cachedRead[T any](ctx context.Context, p *CachedProvider, key string, fetch func(context.Context) (T, error)) (T, error) {
	fresh, err := fetch(ctx)
	if err == nil {
		p.store(ctx, key, fresh)
		return fresh, nil
	}
	if !fallbackAllowed(err) {
		return fresh, err
	}

	cached, cacheErr := readSnapshot[T](ctx, p, key)
	if cacheErr != nil {
		log.Debugf("cached provider: no snapshot for %s: %s", key, cacheErr)
		return fresh, err
	}
	log.Warnf("cached provider: serving %s from cache: %s", key, err)
	return cached, nil
}

// fallbackAllowed is true for transport failures and 5xx answers.
// A definite answer from the server, like a 404, is never hidden by a stale copy.
func fallbackAllowed(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}
