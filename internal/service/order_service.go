package service

import (
	"context"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/google/uuid"
)

type OrderRepositoryI interface {
	Create(ctx context.Context, order *models.Order, owners models.OwnerSet) error
	GetList(ctx context.Context, scope repository.OrderScope, filter repository.OrderFilter) ([]models.Order, error)
}

type OrderService struct {
	repository OrderRepositoryI
	scope      *ScopeResolver
	machine    *OrderStateMachine
	recorder   *ActionRecorder
	clock      Clock
}

type CreateOrderInput struct {
	CustomerID   string
	CourierID    *string
	DeliveryDate *models.Date
}

func NewOrderService(repository OrderRepositoryI, scope *ScopeResolver, machine *OrderStateMachine, recorder *ActionRecorder, clock Clock) *OrderService {
	return &OrderService{repository: repository, scope: scope, machine: machine, recorder: recorder, clock: clock}
}

func (service *OrderService) Create(ctx context.Context, actor models.Actor, input CreateOrderInput) (*models.Order, error) {
	if !actor.Role.IsAdmin() {
		return nil, customerror.NewAuthorizationError("only admins create orders")
	}
	if _, err := uuid.Parse(input.CustomerID); err != nil {
		return nil, customerror.NewValidationError("customerId is not a valid uuid")
	}
	if input.CourierID != nil {
		if _, err := uuid.Parse(*input.CourierID); err != nil {
			return nil, customerror.NewValidationError("courierId is not a valid uuid")
		}
	}

	owners, err := service.scope.ResolveOwnerGroup(ctx, actor)
	if err != nil {
		return nil, err
	}
	if input.CourierID != nil {
		if err = service.scope.EnsureCourierInGroup(ctx, *input.CourierID, owners); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		ID:         uuid.NewString(),
		CustomerID: input.CustomerID,
		CourierID:  input.CourierID,
	}
	if input.DeliveryDate != nil {
		deliveryDate := service.clock.StartOfDate(*input.DeliveryDate)
		order.DeliveryDate = &deliveryDate
	}

	if err = service.repository.Create(ctx, order, owners); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, actor.ID, models.ActionCreate, models.OrderEntity, order.ID,
		fmt.Sprintf("order created for customer %s", order.CustomerID))
	return order, nil
}

// List returns the orders of the actor's owner group; date narrows to one calendar day.
func (service *OrderService) List(ctx context.Context, actor models.Actor, date string, trashed bool) ([]models.Order, error) {
	if !actor.Role.IsAdmin() {
		return nil, customerror.NewAuthorizationError("only admins list orders")
	}

	filter := repository.OrderFilter{Trashed: trashed}
	if date != "" {
		dayStart, dayEnd, err := service.clock.ParseDay(date)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &dayStart, &dayEnd
	}

	owners, err := service.scope.ResolveOwnerGroup(ctx, actor)
	if err != nil {
		return nil, err
	}

	return service.repository.GetList(ctx, repository.OrderScope{Owners: owners}, filter)
}

// CourierRoute lists the courier's own non-trashed orders of a day.
func (service *OrderService) CourierRoute(ctx context.Context, actor models.Actor, date string) ([]models.Order, error) {
	if actor.Role != models.CourierRole {
		return nil, customerror.NewAuthorizationError("route is available to couriers only")
	}

	dayStart, dayEnd, err := service.clock.ParseDay(date)
	if err != nil {
		return nil, err
	}

	courierID := actor.ID
	scope := repository.OrderScope{Owners: models.UnrestrictedOwners(), CourierID: &courierID}
	return service.repository.GetList(ctx, scope, repository.OrderFilter{From: &dayStart, To: &dayEnd})
}

// CourierTransition lets a courier drive one of its own orders.
func (service *OrderService) CourierTransition(ctx context.Context, actor models.Actor, orderID string, to models.OrderStatus) (bool, error) {
	if actor.Role != models.CourierRole {
		return false, customerror.NewAuthorizationError("only couriers drive their orders")
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return false, customerror.NewValidationError("order id is not a valid uuid")
	}
	from, ok := courierSources[to]
	if !ok {
		return false, customerror.NewValidationError(fmt.Sprintf("courier can't set status %q", to))
	}

	courierID := actor.ID
	scope := repository.OrderScope{Owners: models.UnrestrictedOwners(), CourierID: &courierID}
	return service.machine.ApplyTransitionFrom(ctx, actor, orderID, to, from, scope)
}

// courierSources: a courier only drives orders already promoted by start-day.
var courierSources = map[models.OrderStatus][]models.OrderStatus{
	models.InDeliveryStatus: {models.PendingStatus},
	models.DeliveredStatus:  {models.InDeliveryStatus},
	models.FailedStatus:     {models.PendingStatus, models.InDeliveryStatus},
}
