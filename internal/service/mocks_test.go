package service

import (
	"context"
	"time"

	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) EnsureSuperAdmin(ctx context.Context, admin *models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) ListLowAdminIDs(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]string), args.Error(1)
}

type MockActionLogRepository struct {
	mock.Mock
}

func (m *MockActionLogRepository) Create(ctx context.Context, entry *models.ActionLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActionLogRepository) CreateBatch(ctx context.Context, entry models.ActionLog, entityIDs []string) error {
	args := m.Called(ctx, entry, entityIDs)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, entry models.ActionLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, owners models.OwnerSet) error {
	args := m.Called(ctx, order, owners)
	return args.Error(0)
}

func (m *MockOrderRepository) GetList(ctx context.Context, scope repository.OrderScope, filter repository.OrderFilter) ([]models.Order, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, ids []string, scope repository.OrderScope, from []models.OrderStatus, to models.OrderStatus) ([]string, error) {
	args := m.Called(ctx, ids, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepository) NormalizeDrafts(ctx context.Context, owners models.OwnerSet, endOfDay time.Time) ([]string, error) {
	args := m.Called(ctx, owners, endOfDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepository) StartDay(ctx context.Context, owners models.OwnerSet, dayStart, dayEnd time.Time) ([]string, error) {
	args := m.Called(ctx, owners, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetList(ctx context.Context, owners models.OwnerSet, trashed bool) ([]models.Customer, error) {
	args := m.Called(ctx, owners, trashed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}
