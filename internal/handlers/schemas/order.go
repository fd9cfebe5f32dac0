package schemas

import "github.com/Bessima/food-dispatch/internal/models"

type CreateOrderRequest struct {
	CustomerID   string       `json:"customerId" validate:"required"`
	CourierID    *string      `json:"courierId,omitempty"`
	DeliveryDate *models.Date `json:"deliveryDate,omitempty"`
}

type OrderBulkRequest struct {
	TargetIDs []string           `json:"targetIds" validate:"required"`
	Status    models.OrderStatus `json:"status,omitempty"`
	models.OrderPatch
}

type StatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type DispatchRequest struct {
	Date string `json:"date,omitempty"`
}

// BulkResponse carries updatedCount for mutations and deletedCount for purges.
type BulkResponse struct {
	Message            string `json:"message"`
	UpdatedCount       *int   `json:"updatedCount,omitempty"`
	DeletedCount       *int   `json:"deletedCount,omitempty"`
	DeletedOrdersCount *int   `json:"deletedOrdersCount,omitempty"`
	SkippedCount       *int   `json:"skippedCount,omitempty"`
}

func NewUpdatedResponse(message string, updated int) BulkResponse {
	return BulkResponse{Message: message, UpdatedCount: &updated}
}

func NewBulkUpdatedResponse(message string, updated, skipped int) BulkResponse {
	return BulkResponse{Message: message, UpdatedCount: &updated, SkippedCount: &skipped}
}

func NewBulkDeletedResponse(message string, deleted, skipped int) BulkResponse {
	return BulkResponse{Message: message, DeletedCount: &deleted, SkippedCount: &skipped}
}

type StatusResponse struct {
	Message string `json:"message"`
	Applied bool   `json:"applied"`
}
