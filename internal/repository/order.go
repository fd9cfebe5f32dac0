package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/retry"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, customer_id, admin_id, courier_id, delivery_date, order_status, created_at, deleted_at, deleted_by`

type OrderRepository struct {
	db *db.DB
}

// OrderScope narrows an order statement to an owner group and, for couriers, to their own orders.
type OrderScope struct {
	Owners    models.OwnerSet
	CourierID *string
}

type OrderFilter struct {
	From    *time.Time
	To      *time.Time
	Trashed bool
}

type OrderStorageRepositoryI interface {
	Create(ctx context.Context, order *models.Order, owners models.OwnerSet) error
	GetList(ctx context.Context, scope OrderScope, filter OrderFilter) ([]models.Order, error)
	FilterOwned(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	UpdateStatus(ctx context.Context, ids []string, scope OrderScope, from []models.OrderStatus, to models.OrderStatus) ([]string, error)
	ApplyPatch(ctx context.Context, ids []string, owners models.OwnerSet, patch models.OrderPatch) ([]string, error)
	NormalizeDrafts(ctx context.Context, owners models.OwnerSet, endOfDay time.Time) ([]string, error)
	StartDay(ctx context.Context, owners models.OwnerSet, dayStart, dayEnd time.Time) ([]string, error)
	SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error)
	Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
	Purge(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error)
}

func NewOrderRepository(dbObj *db.DB) *OrderRepository {
	return &OrderRepository{db: dbObj}
}

// Create inserts a NEW order owned by the group of its customer. The customer must be
// active and inside the owner set, otherwise nothing is inserted.
func (repository *OrderRepository) Create(ctx context.Context, order *models.Order, owners models.OwnerSet) error {
	query := `INSERT INTO orders (id, customer_id, admin_id, courier_id, delivery_date, order_status)
		SELECT $1, c.id, c.created_by, $3, $4, $5 FROM customers c
		WHERE c.id = $2 AND c.deleted_at IS NULL AND ($6::text[] IS NULL OR c.created_by = ANY($6))
		RETURNING admin_id, created_at`

	err := retry.DoRetry(ctx, func() error {
		row := repository.db.Pool.QueryRow(ctx, query,
			order.ID, order.CustomerID, order.CourierID, order.DeliveryDate, string(models.NewStatus), owners.SQLFilter(),
		)
		return row.Scan(&order.AdminID, &order.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customerror.NewAuthorizationError(fmt.Sprintf("customer %s is not available", order.CustomerID))
		}
		return wrapPGError(err, fmt.Sprintf("order %s already exists", order.ID))
	}
	order.Status = models.NewStatus
	return nil
}

func (repository *OrderRepository) GetList(ctx context.Context, scope OrderScope, filter OrderFilter) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1::text[] IS NULL OR admin_id = ANY($1))
		AND ($2::text IS NULL OR courier_id = $2)
		AND ($3::timestamptz IS NULL OR delivery_date >= $3)
		AND ($4::timestamptz IS NULL OR delivery_date < $4)
		AND (deleted_at IS NOT NULL) = $5
		ORDER BY delivery_date NULLS LAST, created_at`

	return retry.DoRetryWithResult(ctx, func() ([]models.Order, error) {
		rows, err := repository.db.Pool.Query(ctx, query,
			scope.Owners.SQLFilter(), scope.CourierID, filter.From, filter.To, filter.Trashed,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		orders := []models.Order{}
		for rows.Next() {
			var order models.Order
			err = rows.Scan(
				&order.ID, &order.CustomerID, &order.AdminID, &order.CourierID, &order.DeliveryDate,
				&order.Status, &order.CreatedAt, &order.DeletedAt, &order.DeletedBy,
			)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}

		err = rows.Err()
		if err != nil {
			return nil, err
		}

		return orders, nil
	})
}

func (repository *OrderRepository) FilterOwned(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	query := `SELECT id FROM orders WHERE id = ANY($1) AND ($2::text[] IS NULL OR admin_id = ANY($2))`
	return queryIDs(ctx, repository.db, query, ids, owners.SQLFilter())
}

// UpdateStatus is the guarded bulk transition: only non-trashed rows in scope whose
// current status is one of `from` are moved.
func (repository *OrderRepository) UpdateStatus(ctx context.Context, ids []string, scope OrderScope, from []models.OrderStatus, to models.OrderStatus) ([]string, error) {
	query := `UPDATE orders SET order_status = $1
		WHERE id = ANY($2) AND deleted_at IS NULL AND order_status = ANY($3)
		AND ($4::text[] IS NULL OR admin_id = ANY($4))
		AND ($5::text IS NULL OR courier_id = $5)
		RETURNING id`

	return queryIDs(ctx, repository.db, query,
		string(to), ids, models.StatusStrings(from), scope.Owners.SQLFilter(), scope.CourierID,
	)
}

// ApplyPatch updates the patched columns of non-trashed, non-terminal orders in scope.
func (repository *OrderRepository) ApplyPatch(ctx context.Context, ids []string, owners models.OwnerSet, patch models.OrderPatch) ([]string, error) {
	if patch.IsEmpty() {
		return []string{}, nil
	}

	args := []any{ids, owners.SQLFilter(), models.StatusStrings([]models.OrderStatus{models.DeliveredStatus, models.FailedStatus})}
	var assignments []string
	if patch.CourierID.Set {
		args = append(args, patch.CourierID.Value)
		assignments = append(assignments, fmt.Sprintf("courier_id = $%d", len(args)))
	}
	if patch.DeliveryDate.Set {
		var deliveryDate *time.Time
		if patch.DeliveryDate.Value != nil {
			deliveryDate = &patch.DeliveryDate.Value.Time
		}
		args = append(args, deliveryDate)
		assignments = append(assignments, fmt.Sprintf("delivery_date = $%d", len(args)))
	}

	query := `UPDATE orders SET ` + strings.Join(assignments, ", ") + `
		WHERE id = ANY($1) AND deleted_at IS NULL
		AND ($2::text[] IS NULL OR admin_id = ANY($2))
		AND NOT (order_status = ANY($3))
		RETURNING id`

	ids, err := queryIDs(ctx, repository.db, query, args...)
	if err != nil {
		return nil, wrapPGError(err, "order patch conflict")
	}
	return ids, nil
}

// NormalizeDrafts resets orders dated after the current day back to NEW.
func (repository *OrderRepository) NormalizeDrafts(ctx context.Context, owners models.OwnerSet, endOfDay time.Time) ([]string, error) {
	query := `UPDATE orders SET order_status = $1
		WHERE deleted_at IS NULL AND delivery_date > $2 AND order_status = ANY($3)
		AND ($4::text[] IS NULL OR admin_id = ANY($4))
		RETURNING id`

	from := []models.OrderStatus{models.PendingStatus, models.InDeliveryStatus, models.PausedStatus}
	return queryIDs(ctx, repository.db, query,
		string(models.NewStatus), endOfDay, models.StatusStrings(from), owners.SQLFilter(),
	)
}

// StartDay promotes courier-assigned orders of one calendar day to PENDING.
func (repository *OrderRepository) StartDay(ctx context.Context, owners models.OwnerSet, dayStart, dayEnd time.Time) ([]string, error) {
	query := `UPDATE orders SET order_status = $1
		WHERE deleted_at IS NULL AND courier_id IS NOT NULL
		AND delivery_date >= $2 AND delivery_date < $3 AND order_status = ANY($4)
		AND ($5::text[] IS NULL OR admin_id = ANY($5))
		RETURNING id`

	from := []models.OrderStatus{models.NewStatus, models.InProcessStatus}
	return queryIDs(ctx, repository.db, query,
		string(models.PendingStatus), dayStart, dayEnd, models.StatusStrings(from), owners.SQLFilter(),
	)
}

func (repository *OrderRepository) SoftDelete(ctx context.Context, ids []string, owners models.OwnerSet, actorID string, now time.Time) ([]string, error) {
	query := `UPDATE orders SET deleted_at = $1, deleted_by = $2
		WHERE id = ANY($3) AND deleted_at IS NULL AND ($4::text[] IS NULL OR admin_id = ANY($4))
		RETURNING id`
	return queryIDs(ctx, repository.db, query, now, actorID, ids, owners.SQLFilter())
}

func (repository *OrderRepository) Restore(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	query := `UPDATE orders SET deleted_at = NULL, deleted_by = NULL
		WHERE id = ANY($1) AND deleted_at IS NOT NULL AND ($2::text[] IS NULL OR admin_id = ANY($2))
		RETURNING id`
	return queryIDs(ctx, repository.db, query, ids, owners.SQLFilter())
}

func (repository *OrderRepository) Purge(ctx context.Context, ids []string, owners models.OwnerSet) ([]string, error) {
	query := `DELETE FROM orders WHERE id = ANY($1) AND ($2::text[] IS NULL OR admin_id = ANY($2)) RETURNING id`
	return queryIDs(ctx, repository.db, query, ids, owners.SQLFilter())
}
