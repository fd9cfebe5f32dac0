package models

import "time"

type ActionKind string

const (
	ActionCreate       ActionKind = "create"
	ActionStatusChange ActionKind = "status_change"
	ActionUpdate       ActionKind = "update"
	ActionTrash        ActionKind = "trash"
	ActionRestore      ActionKind = "restore"
	ActionPurge        ActionKind = "purge"
	ActionPlanToggle   ActionKind = "plan_toggle"
	ActionStartDay     ActionKind = "start_day"
	ActionNormalize    ActionKind = "normalize_drafts"
)

type ActionLog struct {
	ID          int64      `json:"id"`
	ActorID     string     `json:"actorId"`
	ActionKind  ActionKind `json:"actionKind"`
	EntityType  EntityType `json:"entityType"`
	EntityID    string     `json:"entityId"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
}
