package repository

import (
	"context"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/models"
	"github.com/Bessima/food-dispatch/internal/retry"
)

// auditRetryConfig makes a single attempt: the action log must not hold a request
// while the store is unreachable.
var auditRetryConfig = retry.Config{IsRetryable: retry.IsConnectionError}

type ActionLogRepository struct {
	db *db.DB
}

func NewActionLogRepository(dbObj *db.DB) *ActionLogRepository {
	return &ActionLogRepository{db: dbObj}
}

// Create appends one entry; the table is never updated.
func (repository *ActionLogRepository) Create(ctx context.Context, entry *models.ActionLog) error {
	query := `INSERT INTO action_logs (actor_id, action_kind, entity_type, entity_id, description) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	return retry.DoRetry(ctx, func() error {
		row := repository.db.Pool.QueryRow(ctx, query,
			entry.ActorID, string(entry.ActionKind), string(entry.EntityType), entry.EntityID, entry.Description,
		)
		return row.Scan(&entry.ID, &entry.CreatedAt)
	}, auditRetryConfig)
}

// CreateBatch appends one entry per entity id with a single statement.
func (repository *ActionLogRepository) CreateBatch(ctx context.Context, entry models.ActionLog, entityIDs []string) error {
	if len(entityIDs) == 0 {
		return nil
	}

	query := `INSERT INTO action_logs (actor_id, action_kind, entity_type, entity_id, description)
		SELECT $1, $2, $3, entity_id, $5 FROM unnest($4::text[]) AS entity_id`

	return retry.DoRetry(ctx, func() error {
		_, err := repository.db.Pool.Exec(ctx, query,
			entry.ActorID, string(entry.ActionKind), string(entry.EntityType), entityIDs, entry.Description,
		)
		return err
	}, auditRetryConfig)
}
