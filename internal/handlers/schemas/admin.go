package schemas

import "github.com/Bessima/food-dispatch/internal/models"

type CreateAdminRequest struct {
	Name     string      `json:"name"`
	Login    string      `json:"login" validate:"required,min=3,max=50"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"required"`
	OwnerID  *string     `json:"ownerId,omitempty"`
}

type ScopeResponse struct {
	Unrestricted bool     `json:"unrestricted"`
	OwnerIDs     []string `json:"ownerIds"`
}

func NewScopeResponse(owners models.OwnerSet) ScopeResponse {
	ids := owners.IDs
	if ids == nil {
		ids = []string{}
	}
	return ScopeResponse{Unrestricted: owners.Unrestricted, OwnerIDs: ids}
}
