package models

import "time"

type Customer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	CreatedBy  string     `json:"createdBy"`
	PlanActive bool       `json:"planActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
	DeletedBy  *string    `json:"deletedBy,omitempty"`
}

func (customer *Customer) IsTrashed() bool {
	return customer.DeletedAt != nil
}

// EntityType names a lifecycle-managed table.
type EntityType string

const (
	OrderEntity    EntityType = "order"
	CustomerEntity EntityType = "customer"
	AdminEntity    EntityType = "admin"
)
