package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	SuperAdminRole  Role = "SUPER_ADMIN"
	MiddleAdminRole Role = "MIDDLE_ADMIN"
	LowAdminRole    Role = "LOW_ADMIN"
	CourierRole     Role = "COURIER"
	WorkerRole      Role = "WORKER"
)

func (role Role) IsValid() bool {
	switch role {
	case SuperAdminRole, MiddleAdminRole, LowAdminRole, CourierRole, WorkerRole:
		return true
	default:
		return false
	}
}

// IsAdmin is true for roles that own customers and orders.
func (role Role) IsAdmin() bool {
	return role == SuperAdminRole || role == MiddleAdminRole || role == LowAdminRole
}

// Admin is any authenticated actor: the three admin tiers plus couriers and workers.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedBy    *string   `json:"createdBy,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *Admin) HashPassword(password string) error {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(bytes)
	return nil
}

func (u *Admin) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Actor is the minimal identity every scoped operation needs.
type Actor struct {
	ID   string
	Role Role
}

func (u *Admin) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
