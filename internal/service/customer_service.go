package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/google/uuid"
)

type CustomerRepositoryI interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetList(ctx context.Context, owners models.OwnerSet, trashed bool) ([]models.Customer, error)
}

type CustomerService struct {
	repository CustomerRepositoryI
	scope      *ScopeResolver
	recorder   *ActionRecorder
}

type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address string
}

func NewCustomerService(repository CustomerRepositoryI, scope *ScopeResolver, recorder *ActionRecorder) *CustomerService {
	return &CustomerService{repository: repository, scope: scope, recorder: recorder}
}

// Create registers a customer owned by the creating admin.
func (service *CustomerService) Create(ctx context.Context, actor models.Actor, input CreateCustomerInput) (*models.Customer, error) {
	if !actor.Role.IsAdmin() {
		return nil, customerror.NewAuthorizationError("only admins create customers")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, customerror.NewValidationError("customer name must not be empty")
	}

	customer := &models.Customer{
		ID:         uuid.NewString(),
		Name:       name,
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		CreatedBy:  actor.ID,
		PlanActive: true,
	}
	if err := service.repository.Create(ctx, customer); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, actor.ID, models.ActionCreate, models.CustomerEntity, customer.ID,
		fmt.Sprintf("customer %s created", customer.Name))
	return customer, nil
}

func (service *CustomerService) List(ctx context.Context, actor models.Actor, trashed bool) ([]models.Customer, error) {
	if !actor.Role.IsAdmin() {
		return nil, customerror.NewAuthorizationError("only admins list customers")
	}
	owners, err := service.scope.ResolveOwnerGroup(ctx, actor)
	if err != nil {
		return nil, err
	}
	return service.repository.GetList(ctx, owners, trashed)
}
