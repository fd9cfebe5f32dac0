package service

import (
	"context"

	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"github.com/Bessima/food-dispatch/internal/models"
	"go.uber.org/zap"
)

type ActionLogRepositoryI interface {
	Create(ctx context.Context, entry *models.ActionLog) error
	CreateBatch(ctx context.Context, entry models.ActionLog, entityIDs []string) error
}

type ActionPublisherI interface {
	Publish(ctx context.Context, entry models.ActionLog) error
}

// ActionRecorder writes the append-only action log. It is best effort: failures are
// logged and never reach the caller.
type ActionRecorder struct {
	repository ActionLogRepositoryI
	publisher  ActionPublisherI
}

func NewActionRecorder(repository ActionLogRepositoryI, publisher ActionPublisherI) *ActionRecorder {
	return &ActionRecorder{repository: repository, publisher: publisher}
}

func (recorder *ActionRecorder) Record(ctx context.Context, actorID string, kind models.ActionKind, entityType models.EntityType, entityID string, description string) {
	if recorder == nil {
		return
	}

	entry := models.ActionLog{
		ActorID:     actorID,
		ActionKind:  kind,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}

	if recorder.repository != nil {
		if err := recorder.repository.Create(ctx, &entry); err != nil {
			logger.Log.Warn("action log was not saved",
				zap.String("actor_id", actorID),
				zap.String("action", string(kind)),
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}

	if recorder.publisher != nil {
		if err := recorder.publisher.Publish(ctx, entry); err != nil {
			logger.Log.Warn("action log was not published", zap.String("entity_id", entityID), zap.Error(err))
		}
	}
}

// RecordMany writes one row per entity in a single statement, then publishes each entry.
func (recorder *ActionRecorder) RecordMany(ctx context.Context, actorID string, kind models.ActionKind, entityType models.EntityType, entityIDs []string, description string) {
	if recorder == nil || len(entityIDs) == 0 {
		return
	}

	entry := models.ActionLog{
		ActorID:     actorID,
		ActionKind:  kind,
		EntityType:  entityType,
		Description: description,
	}

	if recorder.repository != nil {
		if err := recorder.repository.CreateBatch(ctx, entry, entityIDs); err != nil {
			logger.Log.Warn("action log batch was not saved",
				zap.String("actor_id", actorID),
				zap.String("action", string(kind)),
				zap.Int("entries", len(entityIDs)),
				zap.Error(err),
			)
		}
	}

	if recorder.publisher == nil {
		return
	}
	for _, id := range entityIDs {
		entry.EntityID = id
		if err := recorder.publisher.Publish(ctx, entry); err != nil {
			logger.Log.Warn("action log was not published", zap.String("entity_id", id), zap.Error(err))
		}
	}
}
