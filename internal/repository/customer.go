package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/retry"
)

type CustomerRepository struct {
	db *db.DB
}

type CustomerStorageRepositoryI interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetList(ctx context.Context, owners models.OwnerSet, trashed bool) ([]models.Customer, error)
	FilterOwned(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error)
	Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	PurgeWithOrders(ctx context.Context, ids []string, owners models.OwnerSet) (deletedOrders []string, deletedCustomers []string, err error)
	SetPlanActive(ctx context.Context, customerID string, owners models.OwnerSet, active bool, dayStart time.Time) ([]string, error)
}

func NewCustomerRepository(dbObj *db.DB) *CustomerRepository {
	return &CustomerRepository{db: dbObj}
}

func (repository *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `INSERT INTO customers (id, name, phone, address, created_by, plan_active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	err := retry.DoRetry(ctx, func() error {
		row := repository.db.Pool.QueryRow(ctx, query,
			customer.ID, customer.Name, customer.Phone, customer.Address, customer.CreatedBy, customer.PlanActive,
		)
		return row.Scan(&customer.CreatedAt)
	})
	return wrapPGError(err, fmt.Sprintf("customer %s already exists", customer.ID))
}

func (repository *CustomerRepository) GetList(ctx context.Context, owners models.OwnerSet, trashed bool) ([]models.Customer, error) {
	query := `SELECT id, name, phone, address, created_by, plan_active, created_at, deleted_at, deleted_by FROM customers
		WHERE ($1::text[] IS NULL OR created_by = ANY($1)) AND (deleted_at IS NOT NULL) = $2
		ORDER BY created_at`

	return retry.DoRetryWithResult(ctx, func() ([]models.Customer, error) {
		rows, err := repository.db.Pool.Query(ctx, query, owners.SQLFilter(), trashed)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		customers := []models.Customer{}
		for rows.Next() {
			var customer models.Customer
			err = rows.Scan(
				&customer.ID, &customer.Name, &customer.Phone, &customer.Address, &customer.CreatedBy,
				&customer.PlanActive, &customer.CreatedAt, &customer.DeletedAt, &customer.DeletedBy,
			)
			if err != nil {
				return nil, err
			}
			customers = append(customers, customer)
		}

		err = rows.Err()
		if err != nil {
			return nil, err
		}

		return customers, nil
	})
}

func (repository *CustomerRepository) FilterOwned(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	query := `SELECT id FROM customers WHERE id = ANY($1) AND ($2::text[] IS NULL OR created_by = ANY($2))`
	return queryIDs(ctx, repository.db, query, ids, owners.SQLFilter())
}

// SoftDelete trashes customers only; their orders keep their own lifecycle.
func (repository *CustomerRepository) SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error) {
	query := `UPDATE customers SET deleted_at = $1, deleted_by = $2
		WHERE id = ANY($3) AND deleted_at IS NULL AND ($4::text[] IS NULL OR created_by = ANY($4))
		RETURNING id`
	return queryIDs(ctx, repository.db, query, now, actorID, ids, owners.SQLFilter())
}

func (repository *CustomerRepository) Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	query := `UPDATE customers SET deleted_at = NULL, deleted_by = NULL
		WHERE id = ANY($1) AND deleted_at IS NOT NULL AND ($2::text[] IS NULL OR created_by = ANY($2))
		RETURNING id`
	return queryIDs(ctx, repository.db, query, ids, owners.SQLFilter())
}

// PurgeWithOrders hard-deletes customers and every order they own in one transaction.
func (repository *CustomerRepository) PurgeWithOrders(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, []string, error) {
	queryOrders := `DELETE FROM orders WHERE customer_id IN (
			SELECT id FROM customers WHERE id = ANY($1) AND ($2::text[] IS NULL OR created_by = ANY($2))
		) RETURNING id`
	queryCustomers := `DELETE FROM customers WHERE id = ANY($1) AND ($2::text[] IS NULL OR created_by = ANY($2)) RETURNING id`

	var deletedOrders, deletedCustomers []string
	err := retry.DoRetry(ctx, func() error {
		tx, err := repository.db.Pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				tx.Rollback(ctx)
			}
		}()

		deletedOrders, err = txQueryIDs(ctx, tx, queryOrders, ids, owners.SQLFilter())
		if err != nil {
			return err
		}

		deletedCustomers, err = txQueryIDs(ctx, tx, queryCustomers, ids, owners.SQLFilter())
		if err != nil {
			return err
		}

		err = tx.Commit(ctx)
		return err
	})
	if err != nil {
		return nil, nil, wrapPGError(err, "customer purge conflict")
	}

	return deletedOrders, deletedCustomers, nil
}

// SetPlanActive flips the auto-ordering flag and pauses or resumes the customer's current
// and future orders in the same transaction. Orders dated before dayStart are never touched.
func (repository *CustomerRepository) SetPlanActive(ctx context.Context, customerID string, owners models.OwnerSet, active bool, dayStart time.Time) ([]string, error) {
	queryCustomer := `UPDATE customers SET plan_active = $1
		WHERE id = $2 AND deleted_at IS NULL AND ($3::text[] IS NULL OR created_by = ANY($3))`
	queryOrders := `UPDATE orders SET order_status = $1
		WHERE customer_id = $2 AND deleted_at IS NULL AND order_status = ANY($3)
		AND (delivery_date >= $4 OR (delivery_date IS NULL AND created_at >= $4))
		RETURNING id`

	to := models.NewStatus
	from := []models.OrderStatus{models.PausedStatus}
	if !active {
		to = models.PausedStatus
		from = models.PausableStatuses
	}

	var updated []string
	err := retry.DoRetry(ctx, func() error {
		tx, err := repository.db.Pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				tx.Rollback(ctx)
			}
		}()

		tag, err := tx.Exec(ctx, queryCustomer, active, customerID, owners.SQLFilter())
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			err = errCustomerUnavailable
			return err
		}

		updated, err = txQueryIDs(ctx, tx, queryOrders, string(to), customerID, models.StatusStrings(from), dayStart)
		if err != nil {
			return err
		}

		err = tx.Commit(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, errCustomerUnavailable) {
			return nil, customerror.NewAuthorizationError(fmt.Sprintf("customer %s is not available", customerID))
		}
		return nil, wrapPGError(err, "plan toggle conflict")
	}

	return updated, nil
}

var errCustomerUnavailable = errors.New("customer is missing, trashed or out of scope")
