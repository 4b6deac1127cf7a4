package user

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
)

// Service defines the interface for user-related business logic.
type Service interface {
	// Register creates a customer account. Self-registration never grants a higher tier.
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, name string) (*User, error)
}

// RegisterRequest holds the fields collected at sign-up.
type RegisterRequest struct {
	Name     string         `json:"name"`
	Password string         `json:"password"`
	Location geo.Coordinate `json:"location"`
}
