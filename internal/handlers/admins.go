package handlers

import (
	"context"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/handlers/schemas"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/service"
)

type AdminServiceI interface {
	Create(ctx context.Context, actor models.Actor, input service.CreateAdminInput) (*models.Admin, error)
}

type ScopeResolverI interface {
	ResolveOwnerGroup(ctx context.Context, actor models.Actor) (models.OwnerSet, error)
}

type AdminHandler struct {
	service AdminServiceI
	scope   ScopeResolverI
}

func NewAdminHandler(service AdminServiceI, scope ScopeResolverI) *AdminHandler {
	return &AdminHandler{service: service, scope: scope}
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req schemas.CreateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.service.Create(r.Context(), actor, service.CreateAdminInput{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, admin)
}

// Scope shows which owner ids the caller's requests are narrowed to.
func (h *AdminHandler) Scope(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	owners, err := h.scope.ResolveOwnerGroup(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schemas.NewScopeResponse(owners))
}
