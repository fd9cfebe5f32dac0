package service

import (
	"context"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
)

type OrderStatusRepositoryI interface {
	UpdateStatus(ctx context.Context, ids []string, scope repository.OrderScope, from []models.OrderStatus, to models.OrderStatus) ([]string, error)
}

// OrderStateMachine applies status transitions as guarded updates: the allowed source
// statuses are part of the statement, so a row that moved meanwhile is simply skipped.
type OrderStateMachine struct {
	orders   OrderStatusRepositoryI
	recorder *ActionRecorder
}

func NewOrderStateMachine(orders OrderStatusRepositoryI, recorder *ActionRecorder) *OrderStateMachine {
	return &OrderStateMachine{orders: orders, recorder: recorder}
}

func (machine *OrderStateMachine) CanTransition(from, to models.OrderStatus) bool {
	return models.CanTransition(from, to)
}

// ApplyTransition moves one order. false means the stored status did not allow it
// or the order is outside the scope; neither is an error.
func (machine *OrderStateMachine) ApplyTransition(ctx context.Context, actor models.Actor, orderID string, to models.OrderStatus, scope repository.OrderScope) (bool, error) {
	applied, err := machine.ApplyBulk(ctx, actor, []string{orderID}, to, scope)
	if err != nil {
		return false, err
	}
	return len(applied) == 1, nil
}

// ApplyTransitionFrom is ApplyTransition narrowed to the given source statuses.
func (machine *OrderStateMachine) ApplyTransitionFrom(ctx context.Context, actor models.Actor, orderID string, to models.OrderStatus, from []models.OrderStatus, scope repository.OrderScope) (bool, error) {
	applied, err := machine.applyGuarded(ctx, actor, []string{orderID}, to, from, scope)
	if err != nil {
		return false, err
	}
	return len(applied) == 1, nil
}

func (machine *OrderStateMachine) ApplyBulk(ctx context.Context, actor models.Actor, orderIDs []string, to models.OrderStatus, scope repository.OrderScope) ([]string, error) {
	return machine.applyGuarded(ctx, actor, orderIDs, to, models.AllowedFrom(to), scope)
}

func (machine *OrderStateMachine) applyGuarded(ctx context.Context, actor models.Actor, orderIDs []string, to models.OrderStatus, sources []models.OrderStatus, scope repository.OrderScope) ([]string, error) {
	if !to.IsValid() {
		return nil, customerror.NewValidationError(fmt.Sprintf("unknown order status %q", to))
	}

	from := make([]models.OrderStatus, 0, len(sources))
	for _, status := range sources {
		if models.CanTransition(status, to) {
			from = append(from, status)
		}
	}
	if len(orderIDs) == 0 || len(from) == 0 {
		return []string{}, nil
	}

	applied, err := machine.orders.UpdateStatus(ctx, orderIDs, scope, from, to)
	if err != nil {
		return nil, err
	}

	machine.recorder.RecordMany(ctx, actor.ID, models.ActionStatusChange, models.OrderEntity, applied,
		fmt.Sprintf("order status changed to %s", to))

	return applied, nil
}
