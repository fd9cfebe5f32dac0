package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/google/uuid"
)

type AdminRepositoryI interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	EnsureSuperAdmin(ctx context.Context, admin *models.Admin) error
}

type AdminService struct {
	repository AdminRepositoryI
	recorder   *ActionRecorder
}

type CreateAdminInput struct {
	Name     string
	Login    string
	Password string
	Role     models.Role
	// OwnerID is the middle admin a super admin attaches a new low admin to.
	OwnerID *string
}

func NewAdminService(repository AdminRepositoryI, recorder *ActionRecorder) *AdminService {
	return &AdminService{repository: repository, recorder: recorder}
}

// creatableRoles: low admins can't create anyone, so the tree never grows deeper than three levels.
var creatableRoles = map[models.Role]map[models.Role]bool{
	models.SuperAdminRole: {
		models.MiddleAdminRole: true,
		models.LowAdminRole:    true,
		models.CourierRole:     true,
		models.WorkerRole:      true,
	},
	models.MiddleAdminRole: {
		models.LowAdminRole: true,
		models.CourierRole:  true,
		models.WorkerRole:   true,
	},
}

func (service *AdminService) Create(ctx context.Context, actor models.Actor, input CreateAdminInput) (*models.Admin, error) {
	if !input.Role.IsValid() {
		return nil, customerror.NewValidationError(fmt.Sprintf("unknown role %q", input.Role))
	}
	if !creatableRoles[actor.Role][input.Role] {
		return nil, customerror.NewAuthorizationError(fmt.Sprintf("role %s can't create %s", actor.Role, input.Role))
	}

	login := strings.TrimSpace(input.Login)
	if len(login) < 3 || len(login) > 50 {
		return nil, customerror.NewValidationError("login must be between 3 and 50 characters")
	}
	if len(input.Password) < 6 {
		return nil, customerror.NewValidationError("password must be at least 6 characters")
	}

	createdBy, err := service.creatorFor(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Login:     login,
		Role:      input.Role,
		CreatedBy: &createdBy,
		IsActive:  true,
	}
	if err = admin.HashPassword(input.Password); err != nil {
		return nil, fmt.Errorf("error generate password hash: %w", err)
	}

	if err = service.repository.Create(ctx, admin); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, actor.ID, models.ActionCreate, models.AdminEntity, admin.ID,
		fmt.Sprintf("%s %s created", admin.Role, admin.Login))
	return admin, nil
}

// creatorFor decides the created_by back-reference. A low admin always hangs under a
// middle admin: the actor itself, or the owner a super admin names.
func (service *AdminService) creatorFor(ctx context.Context, actor models.Actor, input CreateAdminInput) (string, error) {
	if actor.Role != models.SuperAdminRole || input.Role != models.LowAdminRole {
		return actor.ID, nil
	}
	if input.OwnerID == nil {
		return "", customerror.NewValidationError("ownerId is required to create a low admin")
	}
	if _, err := uuid.Parse(*input.OwnerID); err != nil {
		return "", customerror.NewValidationError("ownerId is not a valid uuid")
	}

	owner, err := service.repository.GetByID(ctx, *input.OwnerID)
	if err != nil {
		return "", err
	}
	if owner.Role != models.MiddleAdminRole {
		return "", customerror.NewValidationError("ownerId must reference a middle admin")
	}
	return owner.ID, nil
}

// EnsureSuperAdmin bootstraps the root of the admin tree from configuration.
func (service *AdminService) EnsureSuperAdmin(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return nil
	}
	admin := &models.Admin{
		ID:       uuid.NewString(),
		Name:     "Super admin",
		Login:    login,
		Role:     models.SuperAdminRole,
		IsActive: true,
	}
	if err := admin.HashPassword(password); err != nil {
		return fmt.Errorf("error generate password hash: %w", err)
	}
	return service.repository.EnsureSuperAdmin(ctx, admin)
}
