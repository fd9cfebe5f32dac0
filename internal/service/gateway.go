package service

import (
	"context"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/google/uuid"
)

type Operation string

const (
	OrderStatusOperation     Operation = "order.status"
	OrderPatchOperation      Operation = "order.patch"
	OrderTrashOperation      Operation = "order.trash"
	OrderRestoreOperation    Operation = "order.restore"
	OrderPurgeOperation      Operation = "order.purge"
	CustomerTrashOperation   Operation = "customer.trash"
	CustomerRestoreOperation Operation = "customer.restore"
	CustomerPurgeOperation   Operation = "customer.purge"
	CustomerPlanOperation    Operation = "customer.plan"
)

var (
	anyAdmin     = []models.Role{models.SuperAdminRole, models.MiddleAdminRole, models.LowAdminRole}
	purgeAllowed = []models.Role{models.SuperAdminRole, models.MiddleAdminRole}
)

// operationRoles lists who may run each bulk operation. Low admins never purge.
var operationRoles = map[Operation][]models.Role{
	OrderStatusOperation:     anyAdmin,
	OrderPatchOperation:      anyAdmin,
	OrderTrashOperation:      anyAdmin,
	OrderRestoreOperation:    anyAdmin,
	OrderPurgeOperation:      purgeAllowed,
	CustomerTrashOperation:   anyAdmin,
	CustomerRestoreOperation: anyAdmin,
	CustomerPurgeOperation:   purgeAllowed,
	CustomerPlanOperation:    anyAdmin,
}

type BulkRequest struct {
	Operation  Operation
	TargetIDs  []string
	Status     models.OrderStatus
	Patch      models.OrderPatch
	PlanActive bool
}

type BulkResult struct {
	Applied       int
	Skipped       int
	DeletedOrders int
}

func (operation Operation) entity() models.EntityType {
	switch operation {
	case CustomerTrashOperation, CustomerRestoreOperation, CustomerPurgeOperation, CustomerPlanOperation:
		return models.CustomerEntity
	default:
		return models.OrderEntity
	}
}

// BulkMutationGateway is the entry point of every bulk mutation: it validates, gates by
// role, filters ids by owner group and delegates the allowed subset.
type BulkMutationGateway struct {
	scope     *ScopeResolver
	machine   *OrderStateMachine
	lifecycle *LifecycleStore
	dispatch  *DispatchScheduler
	patches   OrderPatchRepositoryI
	recorder  *ActionRecorder
	clock     Clock
}

type OrderPatchRepositoryI interface {
	ApplyPatch(ctx context.Context, ids []string, owners models.OwnerSet, patch models.OrderPatch) ([]string, error)
}

func NewBulkMutationGateway(
	scope *ScopeResolver,
	machine *OrderStateMachine,
	lifecycle *LifecycleStore,
	dispatch *DispatchScheduler,
	patches OrderPatchRepositoryI,
	recorder *ActionRecorder,
	clock Clock,
) *BulkMutationGateway {
	return &BulkMutationGateway{
		scope:     scope,
		machine:   machine,
		lifecycle: lifecycle,
		dispatch:  dispatch,
		patches:   patches,
		recorder:  recorder,
		clock:     clock,
	}
}

func (gateway *BulkMutationGateway) Execute(ctx context.Context, actor models.Actor, request BulkRequest) (BulkResult, error) {
	if err := validateBulkRequest(actor, request); err != nil {
		return BulkResult{}, err
	}

	targets := uniqueIDs(request.TargetIDs)
	entity := request.Operation.entity()

	owners, err := gateway.scope.ResolveOwnerGroup(ctx, actor)
	if err != nil {
		return BulkResult{}, err
	}

	if request.Operation == OrderPatchOperation && request.Patch.CourierID.Value != nil {
		if err = gateway.scope.EnsureCourierInGroup(ctx, *request.Patch.CourierID.Value, owners); err != nil {
			return BulkResult{}, err
		}
	}

	allowed, err := gateway.scope.FilterIdsInGroup(ctx, entity, targets, owners)
	if err != nil {
		return BulkResult{}, err
	}
	if len(allowed) == 0 {
		return BulkResult{Skipped: len(targets)}, nil
	}

	result, err := gateway.delegate(ctx, actor, owners, request, allowed)
	if err != nil {
		return BulkResult{}, err
	}
	result.Skipped = len(targets) - result.Applied
	return result, nil
}

func (gateway *BulkMutationGateway) delegate(ctx context.Context, actor models.Actor, owners models.OwnerSet, request BulkRequest, allowed []string) (BulkResult, error) {
	entity := request.Operation.entity()

	switch request.Operation {
	case OrderStatusOperation:
		applied, err := gateway.machine.ApplyBulk(ctx, actor, allowed, request.Status, repository.OrderScope{Owners: owners})
		return BulkResult{Applied: len(applied)}, err

	case OrderPatchOperation:
		applied, err := gateway.patches.ApplyPatch(ctx, allowed, owners, gateway.localizePatch(request.Patch))
		if err != nil {
			return BulkResult{}, err
		}
		gateway.recorder.RecordMany(ctx, actor.ID, models.ActionUpdate, models.OrderEntity, applied, "order fields updated")
		return BulkResult{Applied: len(applied)}, nil

	case OrderTrashOperation, CustomerTrashOperation:
		result, err := gateway.lifecycle.SoftDelete(ctx, actor, owners, entity, allowed)
		return BulkResult{Applied: len(result.Changed)}, err

	case OrderRestoreOperation, CustomerRestoreOperation:
		result, err := gateway.lifecycle.Restore(ctx, actor, owners, entity, allowed)
		return BulkResult{Applied: len(result.Changed)}, err

	case OrderPurgeOperation, CustomerPurgeOperation:
		result, err := gateway.lifecycle.Purge(ctx, actor, owners, entity, allowed)
		return BulkResult{Applied: len(result.Changed), DeletedOrders: len(result.DeletedOrders)}, err

	case CustomerPlanOperation:
		toggled, err := gateway.dispatch.SetCustomersPlanActive(ctx, actor, owners, allowed, request.PlanActive)
		return BulkResult{Applied: toggled}, err
	}

	return BulkResult{}, customerror.NewValidationError(fmt.Sprintf("unknown operation %q", request.Operation))
}

func validateBulkRequest(actor models.Actor, request BulkRequest) error {
	roles, ok := operationRoles[request.Operation]
	if !ok {
		return customerror.NewValidationError(fmt.Sprintf("unknown operation %q", request.Operation))
	}
	if len(request.TargetIDs) == 0 {
		return customerror.NewValidationError("targetIds must not be empty")
	}
	for _, id := range request.TargetIDs {
		if _, err := uuid.Parse(id); err != nil {
			return customerror.NewValidationError(fmt.Sprintf("target id %q is not a valid uuid", id))
		}
	}
	if request.Operation != OrderPatchOperation && !request.Patch.IsEmpty() {
		return customerror.NewValidationError(fmt.Sprintf("courierId and deliveryDate are not accepted by %s", request.Operation))
	}
	if request.Operation != OrderStatusOperation && request.Status != "" {
		return customerror.NewValidationError(fmt.Sprintf("status is not accepted by %s", request.Operation))
	}

	switch request.Operation {
	case OrderStatusOperation:
		if !request.Status.IsValid() {
			return customerror.NewValidationError(fmt.Sprintf("unknown order status %q", request.Status))
		}
	case OrderPatchOperation:
		if request.Patch.IsEmpty() {
			return customerror.NewValidationError("patch must contain at least one field")
		}
		if request.Patch.CourierID.Value != nil {
			if _, err := uuid.Parse(*request.Patch.CourierID.Value); err != nil {
				return customerror.NewValidationError("courierId is not a valid uuid")
			}
		}
	}

	for _, role := range roles {
		if role == actor.Role {
			return nil
		}
	}
	return customerror.NewAuthorizationError(fmt.Sprintf("role %s can't run %s", actor.Role, request.Operation))
}

func (gateway *BulkMutationGateway) localizePatch(patch models.OrderPatch) models.OrderPatch {
	if patch.DeliveryDate.Value != nil {
		local := models.Date{Time: gateway.clock.StartOfDate(*patch.DeliveryDate.Value)}
		patch.DeliveryDate.Value = &local
	}
	return patch
}
