package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleProvider UserRole = "PROVIDER"
	UserRoleCustomer UserRole = "CUSTOMER"
)

// User is the identity collaborator's projection used for contact resolution
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Phone     null.String `json:"phone,omitempty"`
	Name      string      `json:"name"`
	Role      UserRole    `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	DeletedAt null.Time   `json:"-"`
}
