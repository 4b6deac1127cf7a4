package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
)

// Role is a user's capability tier.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts only the three known tiers.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q (allowed: customer, manager, admin)", apperr.ErrInvalidInput, s)
}

// User represents an account holder. Name is unique and doubles as the login identity.
type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-"`
	Location     geo.Coordinate `json:"location"`
	Role         Role           `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Update lists the fields an admin may change. Nil fields are left untouched.
type Update struct {
	Name         *string
	PasswordHash *string
	Location     *geo.Coordinate
	Role         *Role
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.PasswordHash == nil && u.Location == nil && u.Role == nil
}
