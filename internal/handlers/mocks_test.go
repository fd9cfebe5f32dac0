package handlers

import (
	"context"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

type MockAdminLookup struct {
	mock.Mock
}

func (m *MockAdminLookup) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminLookup) GetByLogin(ctx context.Context, login string) (*models.Admin, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

type MockBulkGateway struct {
	mock.Mock
}

func (m *MockBulkGateway) Execute(ctx context.Context, actor models.Actor, request service.BulkRequest) (service.BulkResult, error) {
	args := m.Called(ctx, actor, request)
	return args.Get(0).(service.BulkResult), args.Error(1)
}

type MockDispatchScheduler struct {
	mock.Mock
}

func (m *MockDispatchScheduler) StartDay(ctx context.Context, actor models.Actor, date string) (int, error) {
	args := m.Called(ctx, actor, date)
	return args.Int(0), args.Error(1)
}

func (m *MockDispatchScheduler) NormalizeDrafts(ctx context.Context, actor models.Actor) (int, error) {
	args := m.Called(ctx, actor)
	return args.Int(0), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, actor models.Actor, input service.CreateOrderInput) (*models.Order, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, actor models.Actor, date string, trashed bool) ([]models.Order, error) {
	args := m.Called(ctx, actor, date, trashed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) CourierRoute(ctx context.Context, actor models.Actor, date string) ([]models.Order, error) {
	args := m.Called(ctx, actor, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) CourierTransition(ctx context.Context, actor models.Actor, orderID string, to models.OrderStatus) (bool, error) {
	args := m.Called(ctx, actor, orderID, to)
	return args.Bool(0), args.Error(1)
}

var (
	middleAdmin = &models.Admin{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Login: "middle", Role: models.MiddleAdminRole, IsActive: true}
	courier     = &models.Admin{ID: "2b1d3c4e-5f60-4718-8293-a4b5c6d7e8f9", Login: "courier", Role: models.CourierRole, IsActive: true}
)

// withAdmin attaches the authenticated admin and chi url params the way the router does.
func withAdmin(r *http.Request, admin *models.Admin, params map[string]string) *http.Request {
	ctx := context.WithValue(r.Context(), AdminContextKey, admin)
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return r.WithContext(ctx)
}
