package workouts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

type SyncUploadResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RoutinesCount int    `json:"routinesCount"`
	WorkoutsCount int    `json:"workoutsCount"`
}

type SyncSummary struct {
	RoutinesCount int `json:"routinesCount"`
	WorkoutsCount int `json:"workoutsCount"`
}

type SyncDownloadResponse struct {
	Routines []model.Routine    `json:"routines"`
	Workouts []model.WorkoutLog `json:"workouts"`
	Summary  SyncSummary        `json:"summary"`
}

type SyncClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) HandleSyncUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.upload")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input SyncUploadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("sync upload, unmarshal json params: %s", err)
		h.countUpload("invalid")
		http.Error(w, "invalid data format", http.StatusBadRequest)
		return
	}
	if input.Routines == nil && input.Workouts == nil {
		h.countUpload("invalid")
		http.Error(w, "invalid data format", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.ListRoutines(ctx, userID)
	if err != nil {
		log.Errorf("sync upload, list routines [%s]: %s", userID, err)
		h.countUpload("failed")
		http.Error(w, "failed to upload data", http.StatusInternalServerError)
		return
	}

	bundle, err := h.bundleFromUpload(input, existing)
	if err != nil {
		h.countUpload("invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.Import(ctx, userID, bundle); err != nil {
		log.Errorf("sync upload [%s]: %s", userID, err)
		h.countUpload("failed")
		http.Error(w, "failed to upload data", http.StatusInternalServerError)
		return
	}

	h.reports.Invalidate(userID)
	h.countUpload("ok")
	log.Debugf("sync upload [%s]: %d routines, %d workouts", userID, len(bundle.Routines), len(bundle.Workouts))

	pkg.WriteJSONOK(w, SyncUploadResponse{
		Success:       true,
		Message:       "Data uploaded successfully",
		RoutinesCount: len(bundle.Routines),
		WorkoutsCount: len(bundle.Workouts),
	})
}

// bundleFromUpload assigns fresh ids to everything uploaded. A workout keeps its routine link
// when it points to a routine from the same upload or to one the user already has on the server.
func (h *Handler) bundleFromUpload(input SyncUploadInput, existing []model.Routine) (model.SyncBundle, error) {
	now := h.NowFunc()
	routineIDs := make(map[string]string, len(existing))
	for _, r := range existing {
		routineIDs[r.ID] = r.ID
	}

	bundle := model.SyncBundle{
		Routines: make([]model.Routine, 0),
		Workouts: make([]model.WorkoutLog, 0),
	}

	if input.Routines != nil {
		for _, ri := range *input.Routines {
			if err := ri.validate(); err != nil {
				return model.SyncBundle{}, err
			}
			routine := ri.toModel(h.NewIDFunc(), now, true)
			if ri.ID != "" {
				routineIDs[ri.ID] = routine.ID
			}
			bundle.Routines = append(bundle.Routines, routine)
		}
	}

	if input.Workouts != nil {
		for _, wi := range *input.Workouts {
			if err := wi.validate(); err != nil {
				return model.SyncBundle{}, err
			}
			if wi.StartedAt == nil {
				return model.SyncBundle{}, fmt.Errorf("%w: startedAt is required", ErrInvalidInput)
			}
			workout := wi.toModel(h.NewIDFunc(), now, uploadDefaults)
			workout.RoutineID = nil
			if wi.RoutineID != nil {
				if id, ok := routineIDs[*wi.RoutineID]; ok {
					workout.RoutineID = &id
				}
			}
			bundle.Workouts = append(bundle.Workouts, workout)
		}
	}

	return bundle, nil
}

func (h *Handler) HandleSyncDownload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.download")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bundle, err := h.repo.Export(ctx, userID)
	if err != nil {
		log.Errorf("sync download [%s]: %s", userID, err)
		http.Error(w, "failed to download data", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, SyncDownloadResponse{
		Routines: bundle.Routines,
		Workouts: bundle.Workouts,
		Summary: SyncSummary{
			RoutinesCount: len(bundle.Routines),
			WorkoutsCount: len(bundle.Workouts),
		},
	})
}

func (h *Handler) HandleSyncClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.clear")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.repo.Clear(ctx, userID); err != nil {
		log.Errorf("sync clear [%s]: %s", userID, err)
		http.Error(w, "failed to clear data", http.StatusInternalServerError)
		return
	}

	h.reports.Invalidate(userID)
	pkg.WriteJSONOK(w, SyncClearResponse{
		Success: true,
		Message: "All data cleared",
	})
}

func (h *Handler) countUpload(outcome string) {
	h.metricsManager.CounterSyncUploads.With(prometheus.Labels{"outcome": outcome}).Inc()
}
