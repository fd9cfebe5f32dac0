package handlers

import (
	"context"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/service"
	"github.com/go-chi/chi/v5"
)

type CustomerServiceI interface {
	Create(ctx context.Context, actor models.Actor, input service.CreateCustomerInput) (*models.Customer, error)
	List(ctx context.Context, actor models.Actor, trashed bool) ([]models.Customer, error)
}

type PlanTogglerI interface {
	SetCustomerPlanActive(ctx context.Context, actor models.Actor, customerID string, active bool) (int, error)
}

type CustomersHandler struct {
	service CustomerServiceI
	plans   PlanTogglerI
}

func NewCustomersHandler(service CustomerServiceI, plans PlanTogglerI) *CustomersHandler {
	return &CustomersHandler{service: service, plans: plans}
}

func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.CreateCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.Create(r.Context(), actor, service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	customers, err := h.service.List(r.Context(), actor, r.URL.Query().Get("trashed") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomersHandler) SetPlan(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PlanActive == nil {
		http.Error(w, "planActive is required", http.StatusBadRequest)
		return
	}

	updated, err := h.plans.SetCustomerPlanActive(r.Context(), actor, chi.URLParam(r, "id"), *req.PlanActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Customer plan deactivated"
	if *req.PlanActive {
		message = "Customer plan activated"
	}
	writeJSON(w, http.StatusOK, schemas.NewUpdatedResponse(message, updated))
}
