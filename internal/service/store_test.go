package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
)

// memStore mirrors the guarded statements of the postgres repositories in memory.
type memStore struct {
	mu        sync.Mutex
	admins    map[string]*models.Admin
	customers map[string]*models.Customer
	orders    map[string]*models.Order
	logs      []models.ActionLog
}

func newMemStore() *memStore {
	return &memStore{
		admins:    map[string]*models.Admin{},
		customers: map[string]*models.Customer{},
		orders:    map[string]*models.Order{},
	}
}

func (s *memStore) addAdmin(id string, role models.Role, createdBy string) models.Actor {
	admin := &models.Admin{ID: id, Login: id, Role: role, IsActive: true}
	if createdBy != "" {
		admin.CreatedBy = &createdBy
	}
	s.admins[id] = admin
	return admin.Actor()
}

func (s *memStore) addCustomer(id, createdBy string) *models.Customer {
	customer := &models.Customer{ID: id, Name: id, CreatedBy: createdBy, PlanActive: true}
	s.customers[id] = customer
	return customer
}

func (s *memStore) addOrder(id, customerID string, status models.OrderStatus, deliveryDate *time.Time, courierID string) *models.Order {
	order := &models.Order{
		ID:           id,
		CustomerID:   customerID,
		AdminID:      s.customers[customerID].CreatedBy,
		DeliveryDate: deliveryDate,
		Status:       status,
		CreatedAt:    testNow.Add(-48 * time.Hour),
	}
	if courierID != "" {
		order.CourierID = &courierID
	}
	s.orders[id] = order
	return order
}

func (s *memStore) sortedOrderIDs() []string {
	ids := make([]string, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *memStore) GetByID(_ context.Context, id string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.admins[id]
	if !ok {
		return nil, customerror.NewNotFoundError(fmt.Sprintf("admin %s", id))
	}
	copied := *admin
	return &copied, nil
}

func (s *memStore) ListLowAdminIDs(_ context.Context, ownerID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for _, admin := range s.admins {
		if admin.Role == models.LowAdminRole && admin.CreatedBy != nil && *admin.CreatedBy == ownerID {
			ids = append(ids, admin.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *memStore) Create(_ context.Context, entry *models.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = int64(len(s.logs) + 1)
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *memStore) CreateBatch(_ context.Context, entry models.ActionLog, entityIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range entityIDs {
		entry.ID = int64(len(s.logs) + 1)
		entry.EntityID = id
		s.logs = append(s.logs, entry)
	}
	return nil
}

func (s *memStore) logsOf(kind models.ActionKind) []models.ActionLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.ActionLog
	for _, entry := range s.logs {
		if entry.ActionKind == kind {
			result = append(result, entry)
		}
	}
	return result
}

type memOrders struct{ *memStore }

func (o memOrders) FilterOwned(_ context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		if order, ok := o.orders[id]; ok && owners.Contains(order.AdminID) {
			result = append(result, id)
		}
	}
	return result, nil
}

func (o memOrders) UpdateStatus(_ context.Context, ids []string, scope repository.OrderScope, from []models.OrderStatus, to models.OrderStatus) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		order, ok := o.orders[id]
		if !ok || order.IsTrashed() || !statusIn(order.Status, from) || !scope.Owners.Contains(order.AdminID) {
			continue
		}
		if scope.CourierID != nil && (order.CourierID == nil || *order.CourierID != *scope.CourierID) {
			continue
		}
		order.Status = to
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) ApplyPatch(_ context.Context, ids []string, owners models.OwnerSet, patch models.OrderPatch) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		order, ok := o.orders[id]
		if !ok || order.IsTrashed() || order.Status.IsTerminal() || !owners.Contains(order.AdminID) {
			continue
		}
		if patch.CourierID.Set {
			order.CourierID = patch.CourierID.Value
		}
		if patch.DeliveryDate.Set {
			order.DeliveryDate = nil
			if patch.DeliveryDate.Value != nil {
				date := patch.DeliveryDate.Value.Time
				order.DeliveryDate = &date
			}
		}
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) NormalizeDrafts(_ context.Context, owners models.OwnerSet, endOfDay time.Time) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	from := []models.OrderStatus{models.PendingStatus, models.InDeliveryStatus, models.PausedStatus}
	result := []string{}
	for _, id := range o.sortedOrderIDs() {
		order := o.orders[id]
		if order.IsTrashed() || order.DeliveryDate == nil || !order.DeliveryDate.After(endOfDay) {
			continue
		}
		if !statusIn(order.Status, from) || !owners.Contains(order.AdminID) {
			continue
		}
		order.Status = models.NewStatus
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) StartDay(_ context.Context, owners models.OwnerSet, dayStart, dayEnd time.Time) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	from := []models.OrderStatus{models.NewStatus, models.InProcessStatus}
	result := []string{}
	for _, id := range o.sortedOrderIDs() {
		order := o.orders[id]
		if order.IsTrashed() || order.CourierID == nil || order.DeliveryDate == nil {
			continue
		}
		if order.DeliveryDate.Before(dayStart) || !order.DeliveryDate.Before(dayEnd) {
			continue
		}
		if !statusIn(order.Status, from) || !owners.Contains(order.AdminID) {
			continue
		}
		order.Status = models.PendingStatus
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) SoftDelete(_ context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		order, ok := o.orders[id]
		if !ok || order.IsTrashed() || !owners.Contains(order.AdminID) {
			continue
		}
		deletedAt, deletedBy := now, actorID
		order.DeletedAt, order.DeletedBy = &deletedAt, &deletedBy
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) Restore(_ context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		order, ok := o.orders[id]
		if !ok || !order.IsTrashed() || !owners.Contains(order.AdminID) {
			continue
		}
		order.DeletedAt, order.DeletedBy = nil, nil
		result = append(result, id)
	}
	return result, nil
}

func (o memOrders) Purge(_ context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		order, ok := o.orders[id]
		if !ok || !owners.Contains(order.AdminID) {
			continue
		}
		delete(o.orders, id)
		result = append(result, id)
	}
	return result, nil
}

type memCustomers struct{ *memStore }

func (c memCustomers) FilterOwned(_ context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		if customer, ok := c.customers[id]; ok && owners.Contains(customer.CreatedBy) {
			result = append(result, id)
		}
	}
	return result, nil
}

func (c memCustomers) SoftDelete(_ context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		customer, ok := c.customers[id]
		if !ok || customer.IsTrashed() || !owners.Contains(customer.CreatedBy) {
			continue
		}
		deletedAt, deletedBy := now, actorID
		customer.DeletedAt, customer.DeletedBy = &deletedAt, &deletedBy
		result = append(result, id)
	}
	return result, nil
}

func (c memCustomers) Restore(_ context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := []string{}
	for _, id := range ids {
		customer, ok := c.customers[id]
		if !ok || !customer.IsTrashed() || !owners.Contains(customer.CreatedBy) {
			continue
		}
		customer.DeletedAt, customer.DeletedBy = nil, nil
		result = append(result, id)
	}
	return result, nil
}

func (c memCustomers) PurgeWithOrders(_ context.Context, ids []string, owners models.OwnerSet) ([]string, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deletedOrders, deletedCustomers := []string{}, []string{}
	for _, id := range ids {
		customer, ok := c.customers[id]
		if !ok || !owners.Contains(customer.CreatedBy) {
			continue
		}
		for _, orderID := range c.sortedOrderIDs() {
			if c.orders[orderID].CustomerID == id {
				delete(c.orders, orderID)
				deletedOrders = append(deletedOrders, orderID)
			}
		}
		delete(c.customers, id)
		deletedCustomers = append(deletedCustomers, id)
	}
	return deletedOrders, deletedCustomers, nil
}

func (c memCustomers) SetPlanActive(_ context.Context, customerID string, owners models.OwnerSet, active bool, dayStart time.Time) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	customer, ok := c.customers[customerID]
	if !ok || customer.IsTrashed() || !owners.Contains(customer.CreatedBy) {
		return nil, customerror.NewAuthorizationError(fmt.Sprintf("customer %s is not available", customerID))
	}
	customer.PlanActive = active

	to, from := models.NewStatus, []models.OrderStatus{models.PausedStatus}
	if !active {
		to, from = models.PausedStatus, models.PausableStatuses
	}

	result := []string{}
	for _, id := range c.sortedOrderIDs() {
		order := c.orders[id]
		if order.CustomerID != customerID || order.IsTrashed() || !statusIn(order.Status, from) {
			continue
		}
		if order.DeliveryDate != nil && order.DeliveryDate.Before(dayStart) {
			continue
		}
		if order.DeliveryDate == nil && order.CreatedAt.Before(dayStart) {
			continue
		}
		order.Status = to
		result = append(result, id)
	}
	return result, nil
}

func statusIn(status models.OrderStatus, statuses []models.OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

var testNow = time.Date(2026, time.May, 4, 10, 30, 0, 0, time.UTC)

func testClock() Clock {
	return Clock{Now: func() time.Time { return testNow }, Location: time.UTC}
}

func dayOffset(days int) *time.Time {
	date := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &date
}

// testEngine wires every component over one memStore.
type testEngine struct {
	store     *memStore
	scope     *ScopeResolver
	machine   *OrderStateMachine
	lifecycle *LifecycleStore
	dispatch  *DispatchScheduler
	gateway   *BulkMutationGateway
}

func newTestEngine() *testEngine {
	store := newMemStore()
	orders, customers := memOrders{store}, memCustomers{store}
	clock := testClock()

	recorder := NewActionRecorder(store, nil)
	scope := NewScopeResolver(store, orders, customers)
	machine := NewOrderStateMachine(orders, recorder)
	lifecycle := NewLifecycleStore(orders, customers, recorder, clock)
	dispatch := NewDispatchScheduler(scope, orders, customers, recorder, clock)

	return &testEngine{
		store:     store,
		scope:     scope,
		machine:   machine,
		lifecycle: lifecycle,
		dispatch:  dispatch,
		gateway:   NewBulkMutationGateway(scope, machine, lifecycle, dispatch, orders, recorder, clock),
	}
}
