package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/models"
	"go.uber.org/zap"
)

type DispatchOrderRepositoryI interface {
	NormalizeDrafts(ctx context.Context, owners models.OwnerSet, endOfDay time.Time) ([]string, error)
	StartDay(ctx context.Context, owners models.OwnerSet, dayStart, dayEnd time.Time) ([]string, error)
}

type PlanRepositoryI interface {
	SetPlanActive(ctx context.Context, customerID string, owners models.OwnerSet, active bool, dayStart time.Time) ([]string, error)
}

// DispatchScheduler runs the daily bulk transitions. It owns no timer: every
// operation is triggered from outside.
type DispatchScheduler struct {
	scope     *ScopeResolver
	orders    DispatchOrderRepositoryI
	customers PlanRepositoryI
	recorder  *ActionRecorder
	clock     Clock
}

func NewDispatchScheduler(scope *ScopeResolver, orders DispatchOrderRepositoryI, customers PlanRepositoryI, recorder *ActionRecorder, clock Clock) *DispatchScheduler {
	return &DispatchScheduler{scope: scope, orders: orders, customers: customers, recorder: recorder, clock: clock}
}

func (scheduler *DispatchScheduler) ownersFor(ctx context.Context, actor models.Actor) (models.OwnerSet, error) {
	if !actor.Role.IsAdmin() {
		return models.OwnerSet{}, customerror.NewAuthorizationError(fmt.Sprintf("role %s can't run dispatch operations", actor.Role))
	}
	return scheduler.scope.ResolveOwnerGroup(ctx, actor)
}

// NormalizeDrafts sends every order dated after today back to NEW.
func (scheduler *DispatchScheduler) NormalizeDrafts(ctx context.Context, actor models.Actor) (int, error) {
	owners, err := scheduler.ownersFor(ctx, actor)
	if err != nil {
		return 0, err
	}

	updated, err := scheduler.orders.NormalizeDrafts(ctx, owners, scheduler.clock.EndOfToday())
	if err != nil {
		return 0, err
	}

	scheduler.recorder.RecordMany(ctx, actor.ID, models.ActionNormalize, models.OrderEntity, updated,
		"future order reset to NEW")
	return len(updated), nil
}

// StartDay promotes the courier-assigned NEW and IN_PROCESS orders of a day to PENDING.
func (scheduler *DispatchScheduler) StartDay(ctx context.Context, actor models.Actor, date string) (int, error) {
	dayStart, dayEnd, err := scheduler.clock.ParseDay(date)
	if err != nil {
		return 0, err
	}

	owners, err := scheduler.ownersFor(ctx, actor)
	if err != nil {
		return 0, err
	}

	updated, err := scheduler.orders.StartDay(ctx, owners, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}

	scheduler.recorder.RecordMany(ctx, actor.ID, models.ActionStartDay, models.OrderEntity, updated,
		fmt.Sprintf("order promoted to PENDING for %s", dayStart.Format(models.DateLayout)))
	return len(updated), nil
}

// SetCustomerPlanActive pauses (active=false) or resumes the customer's orders from today on.
func (scheduler *DispatchScheduler) SetCustomerPlanActive(ctx context.Context, actor models.Actor, customerID string, active bool) (int, error) {
	owners, err := scheduler.ownersFor(ctx, actor)
	if err != nil {
		return 0, err
	}
	return scheduler.setPlanActive(ctx, actor, owners, customerID, active)
}

// SetCustomersPlanActive toggles customers one by one; a failing customer does not stop the batch.
func (scheduler *DispatchScheduler) SetCustomersPlanActive(ctx context.Context, actor models.Actor, owners models.OwnerSet, customerIDs []string, active bool) (int, error) {
	toggled := 0
	for _, customerID := range customerIDs {
		if _, err := scheduler.setPlanActive(ctx, actor, owners, customerID, active); err != nil {
			logger.Log.Warn("customer plan was not toggled", zap.String("customer_id", customerID), zap.Error(err))
			continue
		}
		toggled++
	}
	return toggled, nil
}

func (scheduler *DispatchScheduler) setPlanActive(ctx context.Context, actor models.Actor, owners models.OwnerSet, customerID string, active bool) (int, error) {
	dayStart, _ := scheduler.clock.Today()

	updated, err := scheduler.customers.SetPlanActive(ctx, customerID, owners, active, dayStart)
	if err != nil {
		return 0, err
	}

	description := "customer plan deactivated"
	orderDescription := "order paused with customer plan"
	if active {
		description = "customer plan activated"
		orderDescription = "order resumed to NEW with customer plan"
	}
	scheduler.recorder.Record(ctx, actor.ID, models.ActionPlanToggle, models.CustomerEntity, customerID, description)
	scheduler.recorder.RecordMany(ctx, actor.ID, models.ActionStatusChange, models.OrderEntity, updated, orderDescription)

	return len(updated), nil
}
