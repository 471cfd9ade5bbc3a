package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/auth"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
	"github.com/2beens/gymtrack/internal/telemetry/metrics"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	ListWorkouts(ctx context.Context, userID string) ([]model.WorkoutSummary, error)
	GetWorkout(ctx context.Context, userID, id string) (*model.WorkoutLog, error)
	CreateWorkout(ctx context.Context, userID string, workout model.WorkoutLog) error
	ListRoutines(ctx context.Context, userID string) ([]model.Routine, error)
	GetRoutine(ctx context.Context, userID, id string) (*model.Routine, error)
	CreateRoutine(ctx context.Context, userID string, routine model.Routine) error
	UpdateRoutine(ctx context.Context, userID string, routine model.Routine) (*model.Routine, error)
	DeleteRoutine(ctx context.Context, userID, id string) error
	Import(ctx context.Context, userID string, bundle model.SyncBundle) error
	Export(ctx context.Context, userID string) (*model.SyncBundle, error)
	Clear(ctx context.Context, userID string) error
}

// reportsCache drops the cached workout snapshot of a user after a write.
type reportsCache interface {
	Invalidate(userID string)
}

type Handler struct {
	repo           workoutsRepo
	reports        reportsCache
	metricsManager *metrics.Manager

	NowFunc   func() time.Time
	NewIDFunc func() string
}

func NewHandler(repo workoutsRepo, reports reportsCache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		reports:        reports,
		metricsManager: metricsManager,
		NowFunc:        time.Now,
		NewIDFunc:      uuid.NewString,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", h.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", h.HandleCreateWorkout).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", h.HandleGetWorkout).Methods("GET", "OPTIONS").Name("get-workout")

	r.HandleFunc("/routines", h.HandleListRoutines).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/routines", h.HandleCreateRoutine).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines/{id}", h.HandleGetRoutine).Methods("GET", "OPTIONS").Name("get-routine")
	r.HandleFunc("/routines/{id}", h.HandleUpdateRoutine).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/routines/{id}", h.HandleDeleteRoutine).Methods("DELETE", "OPTIONS").Name("delete-routine")

	syncRouter := r.PathPrefix("/sync").Subrouter()
	syncRouter.HandleFunc("/upload", h.HandleSyncUpload).Methods("POST", "OPTIONS").Name("sync-upload")
	syncRouter.HandleFunc("/download", h.HandleSyncDownload).Methods("GET", "OPTIONS").Name("sync-download")
	syncRouter.HandleFunc("/clear", h.HandleSyncClear).Methods("DELETE", "OPTIONS").Name("sync-clear")
}

func (h *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	workouts, err := h.repo.ListWorkouts(ctx, userID)
	if err != nil {
		log.Errorf("list workouts [%s]: %s", userID, err)
		http.Error(w, "failed to fetch workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, workouts)
}

func (h *Handler) HandleGetWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	workout, err := h.repo.GetWorkout(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout [%s]: %s", id, err)
		http.Error(w, "failed to fetch workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, workout)
}

func (h *Handler) HandleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input WorkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := input.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.RoutineID != nil {
		if _, err := uuid.Parse(*input.RoutineID); err != nil {
			input.RoutineID = nil
		} else if _, err := h.repo.GetRoutine(ctx, userID, *input.RoutineID); err != nil {
			log.Debugf("new workout, routine [%s] not usable: %s", *input.RoutineID, err)
			input.RoutineID = nil
		}
	}

	workout := input.toModel(h.NewIDFunc(), h.NowFunc(), createDefaults)
	err := h.repo.CreateWorkout(ctx, userID, workout)
	if errors.Is(err, ErrRoutineNotFound) {
		// the routine was deleted in the meantime
		workout.RoutineID = nil
		err = h.repo.CreateWorkout(ctx, userID, workout)
	}
	if err != nil {
		log.Errorf("create workout [%s]: %s", userID, err)
		http.Error(w, "failed to create workout", http.StatusInternalServerError)
		return
	}

	h.reports.Invalidate(userID)
	h.metricsManager.CounterWorkoutsLogged.Inc()
	log.Debugf("new workout [%s] added for user [%s]", workout.ID, userID)

	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
	}
	return userID, ok
}
