package workouts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

func (h *Handler) HandleListRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	routines, err := h.repo.ListRoutines(ctx, userID)
	if err != nil {
		log.Errorf("list routines [%s]: %s", userID, err)
		http.Error(w, "failed to fetch routines", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, routines)
}

func (h *Handler) HandleGetRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.get")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, ok := routineIDFromPath(w, r)
	if !ok {
		return
	}

	routine, err := h.repo.GetRoutine(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("get routine [%s]: %s", id, err)
		http.Error(w, "failed to fetch routine", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, routine)
}

func (h *Handler) HandleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.create")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input RoutineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("new routine, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := input.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	routine := input.toModel(h.NewIDFunc(), h.NowFunc(), false)
	if err := h.repo.CreateRoutine(ctx, userID, routine); err != nil {
		log.Errorf("create routine [%s]: %s", userID, err)
		http.Error(w, "failed to create routine", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, routine, http.StatusCreated)
}

func (h *Handler) HandleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.update")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, ok := routineIDFromPath(w, r)
	if !ok {
		return
	}

	var input RoutineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Tracef("update routine, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := input.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateRoutine(ctx, userID, input.toModel(id, h.NowFunc(), false))
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("update routine [%s]: %s", id, err)
		http.Error(w, "failed to update routine", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, updated)
}

func (h *Handler) HandleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.delete")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, ok := routineIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteRoutine(ctx, userID, id); err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete routine [%s]: %s", id, err)
		http.Error(w, "failed to delete routine", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func routineIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "routine not found", http.StatusNotFound)
		return "", false
	}
	return id, true
}
