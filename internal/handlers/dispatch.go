package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/models"
)

type DispatchSchedulerI interface {
	StartDay(ctx context.Context, actor models.Actor, date string) (int, error)
	NormalizeDrafts(ctx context.Context, actor models.Actor) (int, error)
}

type DispatchHandler struct {
	scheduler DispatchSchedulerI
}

func NewDispatchHandler(scheduler DispatchSchedulerI) *DispatchHandler {
	return &DispatchHandler{scheduler: scheduler}
}

func (h *DispatchHandler) StartDay(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.DispatchRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	updated, err := h.scheduler.StartDay(r.Context(), actor, req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schemas.NewUpdatedResponse(fmt.Sprintf("%d orders moved to PENDING", updated), updated))
}

func (h *DispatchHandler) NormalizeDrafts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.DispatchRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	updated, err := h.scheduler.NormalizeDrafts(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schemas.NewUpdatedResponse(fmt.Sprintf("%d future orders reset to NEW", updated), updated))
}

// decodeOptionalJSON accepts an empty body as the zero request.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "can't read body", http.StatusBadRequest)
		return false
	}
	if len(body) == 0 {
		return true
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return decodeJSON(w, r, dst)
}
