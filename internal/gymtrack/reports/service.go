package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtrack/internal/cache"
	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
	"github.com/2beens/gymtrack/internal/telemetry/metrics"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=reports_test

// WorkoutsSource loads the complete workout history of a user, oldest first.
type WorkoutsSource interface {
	AllWorkouts(ctx context.Context, userID string) ([]model.WorkoutLog, error)
}

// Service feeds a user's workouts into the analytics engine. With a cache set,
// the loaded history is kept per user until it expires or is invalidated.
type Service struct {
	source         WorkoutsSource
	engine         *analytics.Engine
	cache          cache.Cache
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
}

type Option func(*Service)

func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithMetrics(metricsManager *metrics.Manager) Option {
	return func(s *Service) {
		s.metricsManager = metricsManager
	}
}

func NewService(source WorkoutsSource, engine *analytics.Engine, opts ...Option) *Service {
	s := &Service{
		source: source,
		engine: engine,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Stats(ctx context.Context, userID string, timeRange analytics.TimeRange) (_ analytics.StatsReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reports.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("time_range", string(timeRange)))

	workouts, err := s.workouts(ctx, userID)
	if err != nil {
		return analytics.StatsReport{}, err
	}

	defer s.observe("stats", time.Now())
	return s.engine.Stats(workouts, timeRange), nil
}

func (s *Service) ExerciseHistory(
	ctx context.Context,
	userID, exerciseName string,
	timeRange analytics.TimeRange,
) (_ analytics.ExerciseHistoryReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reports.exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise", exerciseName),
		attribute.String("time_range", string(timeRange)),
	)

	workouts, err := s.workouts(ctx, userID)
	if err != nil {
		return analytics.ExerciseHistoryReport{}, err
	}

	defer s.observe("exercise", time.Now())
	return s.engine.ExerciseHistory(workouts, exerciseName, timeRange), nil
}

func (s *Service) Streak(ctx context.Context, userID string, weeklyGoal int) (_ analytics.StreakReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reports.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("weekly_goal", weeklyGoal))

	if err := analytics.ValidateWeeklyGoal(weeklyGoal); err != nil {
		return analytics.StreakReport{}, err
	}

	workouts, err := s.workouts(ctx, userID)
	if err != nil {
		return analytics.StreakReport{}, err
	}

	defer s.observe("streak", time.Now())
	return s.engine.Streak(workouts, weeklyGoal)
}

// Invalidate drops the cached history of the user. Call it after every write.
func (s *Service) Invalidate(userID string) {
	if s.cache == nil {
		return
	}
	s.cache.Del(cacheKey(userID))
}

func (s *Service) workouts(ctx context.Context, userID string) ([]model.WorkoutLog, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(cacheKey(userID)); err == nil {
			var workouts []model.WorkoutLog
			if err := json.Unmarshal(cached, &workouts); err == nil {
				return workouts, nil
			} else {
				log.Errorf("unmarshal cached workouts [%s]: %s", userID, err)
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			log.Warnf("get cached workouts [%s]: %s", userID, err)
		}
	}

	workouts, err := s.source.AllWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(workouts); err != nil {
			log.Errorf("marshal workouts for cache [%s]: %s", userID, err)
		} else if err := s.cache.Set(cacheKey(userID), raw, s.cacheTTL); err != nil {
			log.Debugf("cache workouts [%s]: %s", userID, err)
		}
	}

	return workouts, nil
}

func (s *Service) observe(report string, began time.Time) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterReports.With(prometheus.Labels{"report": report}).Inc()
	s.metricsManager.HistogramReportCompute.With(prometheus.Labels{"report": report}).Observe(time.Since(began).Seconds())
}

func cacheKey(userID string) string {
	return "workouts||" + userID
}

// UserReports binds a Service to a single user, for callers that serve one account.
type UserReports struct {
	service *Service
	userID  string
}

func (s *Service) ForUser(userID string) *UserReports {
	return &UserReports{service: s, userID: userID}
}

func (u *UserReports) Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error) {
	return u.service.Stats(ctx, u.userID, timeRange)
}

func (u *UserReports) ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error) {
	return u.service.ExerciseHistory(ctx, u.userID, exerciseName, timeRange)
}

func (u *UserReports) Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error) {
	return u.service.Streak(ctx, u.userID, weeklyGoal)
}
