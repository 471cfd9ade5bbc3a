package reports

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/auth"
	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=reports_test

type reportsService interface {
	Stats(ctx context.Context, userID string, timeRange analytics.TimeRange) (analytics.StatsReport, error)
	ExerciseHistory(ctx context.Context, userID, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error)
	Streak(ctx context.Context, userID string, weeklyGoal int) (analytics.StreakReport, error)
}

type Handler struct {
	service reportsService
}

func NewHandler(service reportsService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes expects r to match on encoded paths (mux.Router.UseEncodedPath),
// exercise names are unescaped by the handler.
func (h *Handler) SetupRoutes(r *mux.Router) {
	analyticsRouter := r.PathPrefix("/analytics").Subrouter()
	analyticsRouter.HandleFunc("/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("analytics-stats")
	analyticsRouter.HandleFunc("/exercise/{exerciseName}", h.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("analytics-exercise")
	analyticsRouter.HandleFunc("/streak", h.HandleStreak).Methods("GET", "OPTIONS").Name("analytics-streak")
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.stats")
	defer span.End()

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	timeRange := analytics.ParseTimeRange(r.URL.Query().Get("timeRange"))
	report, err := h.service.Stats(ctx, userID, timeRange)
	if err != nil {
		log.Errorf("stats report [%s]: %s", userID, err)
		http.Error(w, "failed to fetch analytics stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, report)
}

func (h *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.exercise")
	defer span.End()

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	exerciseName, err := url.PathUnescape(mux.Vars(r)["exerciseName"])
	if err != nil || exerciseName == "" {
		http.Error(w, "invalid exercise name", http.StatusBadRequest)
		return
	}
	timeRange := analytics.ParseTimeRange(r.URL.Query().Get("timeRange"))
	report, err := h.service.ExerciseHistory(ctx, userID, exerciseName, timeRange)
	if err != nil {
		log.Errorf("exercise history report [%s] [%s]: %s", userID, exerciseName, err)
		http.Error(w, "failed to fetch exercise history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, report)
}

func (h *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.streak")
	defer span.End()

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	weeklyGoal, err := analytics.ParseWeeklyGoal(r.URL.Query().Get("weeklyGoal"))
	if err != nil {
		http.Error(w, "Weekly goal must be between 1 and 7", http.StatusBadRequest)
		return
	}

	report, err := h.service.Streak(ctx, userID, weeklyGoal)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidWeeklyGoal) {
			http.Error(w, "Weekly goal must be between 1 and 7", http.StatusBadRequest)
			return
		}
		log.Errorf("streak report [%s]: %s", userID, err)
		http.Error(w, "failed to fetch streak data", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, report)
}
