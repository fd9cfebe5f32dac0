package handlers

import (
	"context"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderServiceI interface {
	Create(ctx context.Context, actor models.Actor, input service.CreateOrderInput) (*models.Order, error)
	List(ctx context.Context, actor models.Actor, date string, trashed bool) ([]models.Order, error)
	CourierRoute(ctx context.Context, actor models.Actor, date string) ([]models.Order, error)
	CourierTransition(ctx context.Context, actor models.Actor, orderID string, to models.OrderStatus) (bool, error)
}

type OrdersHandler struct {
	service OrderServiceI
}

func NewOrderHandler(service OrderServiceI) *OrdersHandler {
	return &OrdersHandler{service: service}
}

func (h *OrdersHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), actor, service.CreateOrderInput{
		CustomerID:   req.CustomerID,
		CourierID:    req.CourierID,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	orders, err := h.service.List(r.Context(), actor, query.Get("date"), query.Get("trashed") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) CourierRoute(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	orders, err := h.service.CourierRoute(r.Context(), actor, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// CourierStatus answers 200 with applied=false when the guard rejected the move.
func (h *OrdersHandler) CourierStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	applied, err := h.service.CourierTransition(r.Context(), actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Order status changed"
	if !applied {
		message = "Order status was not changed"
	}
	writeJSON(w, http.StatusOK, schemas.StatusResponse{Message: message, Applied: applied})
}
