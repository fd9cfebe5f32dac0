package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/models"
	"go.uber.org/zap"
)

type AdminLookupI interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	ListLowAdminIDs(ctx context.Context, ownerID string) ([]string, error)
}

type OwnedFilterI interface {
	FilterOwned(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
}

// ScopeResolver is the single place that turns an actor into the admin ids it may act for.
// Nothing is cached: group membership can change between requests.
type ScopeResolver struct {
	admins  AdminLookupI
	filters map[models.EntityType]OwnedFilterI
}

func NewScopeResolver(admins AdminLookupI, orders OwnedFilterI, customers OwnedFilterI) *ScopeResolver {
	return &ScopeResolver{
		admins: admins,
		filters: map[models.EntityType]OwnedFilterI{
			models.OrderEntity:    orders,
			models.CustomerEntity: customers,
		},
	}
}

func (resolver *ScopeResolver) ResolveOwnerGroup(ctx context.Context, actor models.Actor) (models.OwnerSet, error) {
	var ownerID string

	switch actor.Role {
	case models.SuperAdminRole:
		return models.UnrestrictedOwners(), nil
	case models.MiddleAdminRole:
		ownerID = actor.ID
	case models.LowAdminRole:
		owner, err := resolver.lowAdminOwner(ctx, actor.ID)
		if err != nil {
			return models.OwnerSet{}, err
		}
		ownerID = owner
	case models.CourierRole, models.WorkerRole:
		return models.NewOwnerSet(actor.ID), nil
	default:
		return models.OwnerSet{}, customerror.NewAuthorizationError(fmt.Sprintf("unknown role %q", actor.Role))
	}

	lowAdmins, err := resolver.admins.ListLowAdminIDs(ctx, ownerID)
	if err != nil {
		return models.OwnerSet{}, err
	}

	ids := make([]string, 0, len(lowAdmins)+1)
	ids = append(ids, ownerID)
	for _, id := range lowAdmins {
		if id != ownerID {
			ids = append(ids, id)
		}
	}
	return models.NewOwnerSet(ids...), nil
}

// lowAdminOwner finds the middle admin that created a low admin.
// A low admin without a resolvable creator is treated as its own owner.
func (resolver *ScopeResolver) lowAdminOwner(ctx context.Context, actorID string) (string, error) {
	admin, err := resolver.admins.GetByID(ctx, actorID)
	if err != nil {
		var notFound *customerror.NotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
		admin = nil
	}

	if admin == nil || admin.CreatedBy == nil || *admin.CreatedBy == "" {
		logger.Log.Warn("low admin has no creator, scoping to itself", zap.String("admin_id", actorID))
		return actorID, nil
	}
	return *admin.CreatedBy, nil
}

// EnsureCourierInGroup accepts only an active courier created inside the owner group.
// Unknown ids and foreign couriers get the same error.
func (resolver *ScopeResolver) EnsureCourierInGroup(ctx context.Context, courierID string, owners models.OwnerSet) error {
	unavailable := customerror.NewValidationError(fmt.Sprintf("courier %s is not available", courierID))

	courier, err := resolver.admins.GetByID(ctx, courierID)
	if err != nil {
		var notFound *customerror.NotFoundError
		if errors.As(err, &notFound) {
			return unavailable
		}
		return err
	}
	if courier.Role != models.CourierRole || !courier.IsActive {
		return unavailable
	}
	if owners.Unrestricted {
		return nil
	}
	if courier.CreatedBy == nil || !owners.Contains(*courier.CreatedBy) {
		return unavailable
	}
	return nil
}

// FilterIdsInGroup keeps the candidate ids owned by the group. Unknown and foreign ids
// are dropped silently; duplicates are collapsed.
func (resolver *ScopeResolver) FilterIdsInGroup(ctx context.Context, entity models.EntityType, candidateIDs []string, owners models.OwnerSet) ([]string, error) {
	unique := uniqueIDs(candidateIDs)
	if owners.Unrestricted || len(unique) == 0 {
		return unique, nil
	}

	filter, ok := resolver.filters[entity]
	if !ok {
		return nil, customerror.NewValidationError(fmt.Sprintf("entity %q has no owner scope", entity))
	}
	return filter.FilterOwned(ctx, unique, owners)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
