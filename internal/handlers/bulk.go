package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/service"
	"github.com/go-chi/chi/v5"
)

type BulkGatewayI interface {
	Execute(ctx context.Context, actor models.Actor, request service.BulkRequest) (service.BulkResult, error)
}

type BulkHandler struct {
	gateway BulkGatewayI
}

func NewBulkHandler(gateway BulkGatewayI) *BulkHandler {
	return &BulkHandler{gateway: gateway}
}

var orderActions = map[string]service.Operation{
	"status":  service.OrderStatusOperation,
	"update":  service.OrderPatchOperation,
	"trash":   service.OrderTrashOperation,
	"restore": service.OrderRestoreOperation,
	"purge":   service.OrderPurgeOperation,
}

var customerActions = map[string]service.Operation{
	"trash":   service.CustomerTrashOperation,
	"restore": service.CustomerRestoreOperation,
	"purge":   service.CustomerPurgeOperation,
	"plan":    service.CustomerPlanOperation,
}

func (h *BulkHandler) Orders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	operation, found := orderActions[chi.URLParam(r, "action")]
	if !found {
		http.NotFound(w, r)
		return
	}

	var req schemas.OrderBulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.execute(w, r, actor, service.BulkRequest{
		Operation: operation,
		TargetIDs: req.TargetIDs,
		Status:    req.Status,
		Patch:     req.OrderPatch,
	})
}

func (h *BulkHandler) Customers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	operation, found := customerActions[chi.URLParam(r, "action")]
	if !found {
		http.NotFound(w, r)
		return
	}

	var req schemas.CustomerBulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	request := service.BulkRequest{Operation: operation, TargetIDs: req.TargetIDs}
	if operation == service.CustomerPlanOperation {
		if req.PlanActive == nil {
			http.Error(w, "planActive is required", http.StatusBadRequest)
			return
		}
		request.PlanActive = *req.PlanActive
	}

	h.execute(w, r, actor, request)
}

func (h *BulkHandler) execute(w http.ResponseWriter, r *http.Request, actor models.Actor, request service.BulkRequest) {
	result, err := h.gateway.Execute(r.Context(), actor, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkResponse(request.Operation, result))
}

func bulkResponse(operation service.Operation, result service.BulkResult) schemas.BulkResponse {
	switch operation {
	case service.OrderPurgeOperation:
		return schemas.NewBulkDeletedResponse(fmt.Sprintf("%d orders deleted", result.Applied), result.Applied, result.Skipped)
	case service.CustomerPurgeOperation:
		response := schemas.NewBulkDeletedResponse(
			fmt.Sprintf("%d customers and %d orders deleted", result.Applied, result.DeletedOrders),
			result.Applied, result.Skipped,
		)
		response.DeletedOrdersCount = &result.DeletedOrders
		return response
	}
	return schemas.NewBulkUpdatedResponse(fmt.Sprintf("%d records updated", result.Applied), result.Applied, result.Skipped)
}
