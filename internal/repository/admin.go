package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/retry"
	"github.com/jackc/pgx/v5"
)

const adminColumns = `id, name, login, password, role, created_by, is_active, created_at`

type AdminRepository struct {
	db *db.DB
}

type AdminStorageRepositoryI interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByLogin(ctx context.Context, login string) (*models.Admin, error)
	ListLowAdminIDs(ctx context.Context, ownerID string) ([]string, error)
}

func NewAdminRepository(dbObj *db.DB) *AdminRepository {
	return &AdminRepository{db: dbObj}
}

func (repository *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `INSERT INTO admins (id, name, login, password, role, created_by, is_active) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`

	err := retry.DoRetry(ctx, func() error {
		row := repository.db.Pool.QueryRow(ctx, query,
			admin.ID, admin.Name, admin.Login, admin.PasswordHash, string(admin.Role), admin.CreatedBy, admin.IsActive,
		)
		return row.Scan(&admin.CreatedAt)
	})
	return wrapPGError(err, fmt.Sprintf("login %s is already taken", admin.Login))
}

// EnsureSuperAdmin creates the root admin unless its login already exists.
func (repository *AdminRepository) EnsureSuperAdmin(ctx context.Context, admin *models.Admin) error {
	query := `INSERT INTO admins (id, name, login, password, role, is_active) VALUES ($1, $2, $3, $4, $5, TRUE) ON CONFLICT (login) DO NOTHING`

	return retry.DoRetry(ctx, func() error {
		_, err := repository.db.Pool.Exec(ctx, query,
			admin.ID, admin.Name, admin.Login, admin.PasswordHash, string(models.SuperAdminRole),
		)
		return err
	})
}

func (repository *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return repository.getOne(ctx, query, id)
}

func (repository *AdminRepository) GetByLogin(ctx context.Context, login string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE login = $1`
	return repository.getOne(ctx, query, login)
}

func (repository *AdminRepository) getOne(ctx context.Context, query string, arg any) (*models.Admin, error) {
	admin, err := retry.DoRetryWithResult(ctx, func() (*models.Admin, error) {
		row := repository.db.Pool.QueryRow(ctx, query, arg)

		elem := models.Admin{}
		err := row.Scan(
			&elem.ID, &elem.Name, &elem.Login, &elem.PasswordHash, &elem.Role,
			&elem.CreatedBy, &elem.IsActive, &elem.CreatedAt,
		)
		return &elem, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError(fmt.Sprintf("admin %v", arg))
		}
		return nil, wrapPGError(err, "")
	}
	return admin, nil
}

// ListLowAdminIDs returns the low admins created by the given owner.
func (repository *AdminRepository) ListLowAdminIDs(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT id FROM admins WHERE created_by = $1 AND role = $2`
	return queryIDs(ctx, repository.db, query, ownerID, string(models.LowAdminRole))
}
