package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
)

type OrderLifecycleRepositoryI interface {
	SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error)
	Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	Purge(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
}

type CustomerLifecycleRepositoryI interface {
	SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error)
	Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	PurgeWithOrders(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, []string, error)
}

// LifecycleResult counts the rows a lifecycle operation changed.
type LifecycleResult struct {
	Changed       []string
	DeletedOrders []string
}

// LifecycleStore moves orders and customers between active, trashed and purged.
// Callers pass ids already filtered by the owner group; statements re-check the group.
type LifecycleStore struct {
	orders    OrderLifecycleRepositoryI
	customers CustomerLifecycleRepositoryI
	recorder  *ActionRecorder
	clock     Clock
}

func NewLifecycleStore(orders OrderLifecycleRepositoryI, customers CustomerLifecycleRepositoryI, recorder *ActionRecorder, clock Clock) *LifecycleStore {
	return &LifecycleStore{orders: orders, customers: customers, recorder: recorder, clock: clock}
}

func (store *LifecycleStore) SoftDelete(ctx context.Context, actor models.Actor, owners models.OwnerSet, entity models.EntityType, ids []string) (LifecycleResult, error) {
	now := store.clock.now()

	var changed []string
	var err error
	switch entity {
	case models.OrderEntity:
		changed, err = store.orders.SoftDelete(ctx, ids, owners, actor.ID, now)
	case models.CustomerEntity:
		changed, err = store.customers.SoftDelete(ctx, ids, owners, actor.ID, now)
	default:
		return LifecycleResult{}, unknownEntity(entity)
	}
	if err != nil {
		return LifecycleResult{}, err
	}

	store.recorder.RecordMany(ctx, actor.ID, models.ActionTrash, entity, changed, fmt.Sprintf("%s moved to trash", entity))
	return LifecycleResult{Changed: changed}, nil
}

// Restore clears the trash marks. Order status is left as it was.
func (store *LifecycleStore) Restore(ctx context.Context, actor models.Actor, owners models.OwnerSet, entity models.EntityType, ids []string) (LifecycleResult, error) {
	var changed []string
	var err error
	switch entity {
	case models.OrderEntity:
		changed, err = store.orders.Restore(ctx, ids, owners)
	case models.CustomerEntity:
		changed, err = store.customers.Restore(ctx, ids, owners)
	default:
		return LifecycleResult{}, unknownEntity(entity)
	}
	if err != nil {
		return LifecycleResult{}, err
	}

	store.recorder.RecordMany(ctx, actor.ID, models.ActionRestore, entity, changed, fmt.Sprintf("%s restored from trash", entity))
	return LifecycleResult{Changed: changed}, nil
}

// Purge hard-deletes rows. Purging customers removes their orders first, in one transaction.
func (store *LifecycleStore) Purge(ctx context.Context, actor models.Actor, owners models.OwnerSet, entity models.EntityType, ids []string) (LifecycleResult, error) {
	var result LifecycleResult
	var err error
	switch entity {
	case models.OrderEntity:
		result.Changed, err = store.orders.Purge(ctx, ids, owners)
	case models.CustomerEntity:
		result.DeletedOrders, result.Changed, err = store.customers.PurgeWithOrders(ctx, ids, owners)
	default:
		return LifecycleResult{}, unknownEntity(entity)
	}
	if err != nil {
		return LifecycleResult{}, err
	}

	store.recorder.RecordMany(ctx, actor.ID, models.ActionPurge, models.OrderEntity, result.DeletedOrders, "order purged with its customer")
	store.recorder.RecordMany(ctx, actor.ID, models.ActionPurge, entity, result.Changed, fmt.Sprintf("%s purged", entity))
	return result, nil
}

func unknownEntity(entity models.EntityType) error {
	return customerror.NewValidationError(fmt.Sprintf("entity %q has no lifecycle", entity))
}
