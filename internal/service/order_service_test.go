package service

import (
	"context"
	"testing"
	"time"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServiceFixture() (*OrderService, *MockOrderRepository, *testEngine) {
	engine := newTestEngine()
	orders := new(MockOrderRepository)
	return NewOrderService(orders, engine.scope, engine.machine, NewActionRecorder(engine.store, nil), testClock()), orders, engine
}

func TestOrderService_Create(t *testing.T) {
	t.Run("creates order in the actor's group", func(t *testing.T) {
		// Arrange
		service, orders, engine := newOrderServiceFixture()
		low := engine.store.addAdmin(lowA, models.LowAdminRole, middleA)
		date, err := models.ParseDate("2026-05-06")
		require.NoError(t, err)

		orders.On("Create", mock.Anything, mock.MatchedBy(func(order *models.Order) bool {
			return order.CustomerID == customerA && order.DeliveryDate != nil &&
				order.DeliveryDate.Equal(time.Date(2026, time.May, 6, 0, 0, 0, 0, time.UTC))
		}), models.NewOwnerSet(middleA, lowA)).Return(nil)

		// Act
		order, err := service.Create(context.Background(), low, CreateOrderInput{CustomerID: customerA, DeliveryDate: &date})

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Len(t, engine.store.logsOf(models.ActionCreate), 1)
		orders.AssertExpectations(t)
	})

	t.Run("rejects malformed customer id", func(t *testing.T) {
		service, orders, _ := newOrderServiceFixture()

		_, err := service.Create(context.Background(), models.Actor{ID: superID, Role: models.SuperAdminRole}, CreateOrderInput{CustomerID: "7"})

		var validationErr *customerror.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("courier must belong to the group", func(t *testing.T) {
		service, orders, engine := newOrderServiceFixture()
		middle := engine.store.addAdmin(middleA, models.MiddleAdminRole, superID)
		engine.store.addAdmin(courierB, models.CourierRole, middleB)
		foreign := courierB
		unknown := unknownID

		_, err := service.Create(context.Background(), middle, CreateOrderInput{CustomerID: customerA, CourierID: &foreign})
		var validationErr *customerror.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		_, err = service.Create(context.Background(), middle, CreateOrderInput{CustomerID: customerA, CourierID: &unknown})
		assert.ErrorAs(t, err, &validationErr)

		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("workers don't create orders", func(t *testing.T) {
		service, _, _ := newOrderServiceFixture()

		_, err := service.Create(context.Background(), models.Actor{ID: workerA, Role: models.WorkerRole}, CreateOrderInput{CustomerID: customerA})

		var authErr *customerror.AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestOrderService_List(t *testing.T) {
	// Arrange
	service, orders, _ := newOrderServiceFixture()
	dayStart := time.Date(2026, time.May, 7, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	expected := []models.Order{{ID: orderA1}}
	orders.On("GetList", mock.Anything,
		repository.OrderScope{Owners: models.UnrestrictedOwners()},
		repository.OrderFilter{From: &dayStart, To: &dayEnd, Trashed: true},
	).Return(expected, nil)

	// Act
	result, err := service.List(context.Background(), models.Actor{ID: superID, Role: models.SuperAdminRole}, "2026-05-07", true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	orders.AssertExpectations(t)
}

func TestOrderService_CourierRoute(t *testing.T) {
	service, orders, _ := newOrderServiceFixture()
	courier := models.Actor{ID: courierA, Role: models.CourierRole}
	orders.On("GetList", mock.Anything, mock.MatchedBy(func(scope repository.OrderScope) bool {
		return scope.CourierID != nil && *scope.CourierID == courierA
	}), mock.Anything).Return([]models.Order{}, nil)

	route, err := service.CourierRoute(context.Background(), courier, "")
	require.NoError(t, err)
	assert.Empty(t, route)

	_, err = service.CourierRoute(context.Background(), models.Actor{ID: middleA, Role: models.MiddleAdminRole}, "")
	var authErr *customerror.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestOrderService_CourierTransition(t *testing.T) {
	service, _, engine := newOrderServiceFixture()
	courier := engine.store.addAdmin(courierA, models.CourierRole, middleA)
	engine.store.addCustomer(customerA, middleA)
	engine.store.addOrder(orderA1, customerA, models.PendingStatus, dayOffset(0), courierA)
	engine.store.addOrder(orderB1, customerA, models.PendingStatus, dayOffset(0), "")
	ctx := context.Background()

	applied, err := service.CourierTransition(ctx, courier, orderA1, models.InDeliveryStatus)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = service.CourierTransition(ctx, courier, orderA1, models.DeliveredStatus)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = service.CourierTransition(ctx, courier, orderB1, models.InDeliveryStatus)
	require.NoError(t, err)
	assert.False(t, applied, "not assigned to this courier")

	_, err = service.CourierTransition(ctx, courier, orderB1, models.PausedStatus)
	var validationErr *customerror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestOrderService_CourierTransitionNeedsDayStart(t *testing.T) {
	// Arrange
	service, _, engine := newOrderServiceFixture()
	courier := engine.store.addAdmin(courierA, models.CourierRole, middleA)
	engine.store.addCustomer(customerA, middleA)
	engine.store.addOrder(orderA1, customerA, models.NewStatus, dayOffset(0), courierA)
	engine.store.addOrder(orderA2, customerA, models.InProcessStatus, dayOffset(0), courierA)
	engine.store.addOrder(orderA3, customerA, models.PendingStatus, dayOffset(0), courierA)
	ctx := context.Background()

	testCases := []struct {
		name    string
		orderID string
		to      models.OrderStatus
		applied bool
	}{
		{name: "new order can't be delivered", orderID: orderA1, to: models.DeliveredStatus},
		{name: "new order can't go on the road", orderID: orderA1, to: models.InDeliveryStatus},
		{name: "order in process can't fail", orderID: orderA2, to: models.FailedStatus},
		{name: "pending order can't skip the road", orderID: orderA3, to: models.DeliveredStatus},
		{name: "pending order can fail", orderID: orderA3, to: models.FailedStatus, applied: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			applied, err := service.CourierTransition(ctx, courier, tc.orderID, tc.to)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.applied, applied)
		})
	}
	assert.Equal(t, models.NewStatus, engine.store.orders[orderA1].Status)
	assert.Equal(t, models.InProcessStatus, engine.store.orders[orderA2].Status)
	assert.Equal(t, models.FailedStatus, engine.store.orders[orderA3].Status)
}
