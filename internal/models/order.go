package models

import "time"

type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	AdminID      string      `json:"adminId"`
	CourierID    *string     `json:"courierId,omitempty"`
	DeliveryDate *time.Time  `json:"deliveryDate,omitempty"`
	Status       OrderStatus `json:"orderStatus"`
	CreatedAt    time.Time   `json:"createdAt"`
	DeletedAt    *time.Time  `json:"deletedAt,omitempty"`
	DeletedBy    *string     `json:"deletedBy,omitempty"`
}

func (order *Order) IsTrashed() bool {
	return order.DeletedAt != nil
}

type OrderStatus string

const (
	NewStatus        OrderStatus = "NEW"
	InProcessStatus  OrderStatus = "IN_PROCESS"
	PendingStatus    OrderStatus = "PENDING"
	InDeliveryStatus OrderStatus = "IN_DELIVERY"
	PausedStatus     OrderStatus = "PAUSED"
	DeliveredStatus  OrderStatus = "DELIVERED"
	FailedStatus     OrderStatus = "FAILED"
)

var AllOrderStatuses = []OrderStatus{
	NewStatus,
	InProcessStatus,
	PendingStatus,
	InDeliveryStatus,
	PausedStatus,
	DeliveredStatus,
	FailedStatus,
}

// PausableStatuses are the active pre-terminal statuses an order can be paused from.
var PausableStatuses = []OrderStatus{NewStatus, PendingStatus, InProcessStatus, InDeliveryStatus}

func (status OrderStatus) IsValid() bool {
	for _, known := range AllOrderStatuses {
		if status == known {
			return true
		}
	}
	return false
}

func (status OrderStatus) IsTerminal() bool {
	return status == DeliveredStatus || status == FailedStatus
}

func (status OrderStatus) String() string {
	return string(status)
}

// CanTransition reports whether an order may move from one status to another.
// Terminal statuses never move, PAUSED is entered only from an active status
// and always resumes to NEW.
func CanTransition(from, to OrderStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from.IsTerminal() || from == to {
		return false
	}
	if to == PausedStatus {
		return containsStatus(PausableStatuses, from)
	}
	if from == PausedStatus {
		return to == NewStatus
	}
	return true
}

// AllowedFrom lists every status that can legally transition to the given one.
func AllowedFrom(to OrderStatus) []OrderStatus {
	allowed := make([]OrderStatus, 0, len(AllOrderStatuses))
	for _, from := range AllOrderStatuses {
		if CanTransition(from, to) {
			allowed = append(allowed, from)
		}
	}
	return allowed
}

// StatusStrings converts statuses into the plain values bound to SQL array parameters.
func StatusStrings(statuses []OrderStatus) []string {
	result := make([]string, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, string(status))
	}
	return result
}

func containsStatus(statuses []OrderStatus, status OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
