// Package admin is the admin-only directory over users and products.
package admin

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

// Service defines admin CRUD. Every call requires the admin tier and
// resolves the target identifier before mutating it.
type Service interface {
	CreateUser(ctx context.Context, id auth.Identity, req CreateUserRequest) (*user.User, error)
	GetUser(ctx context.Context, id auth.Identity, userID int64) (*user.User, error)
	FindUsers(ctx context.Context, id auth.Identity, name string) ([]*user.User, error)
	UpdateUser(ctx context.Context, id auth.Identity, userID int64, changes UserChanges) (*user.User, error)
	DeleteUser(ctx context.Context, id auth.Identity, userID int64) error

	CreateProduct(ctx context.Context, id auth.Identity, req CreateProductRequest) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id auth.Identity, storeID int64, name string) error
	// UpdateProduct edits any store's product; there is no ownership check for admins.
	UpdateProduct(ctx context.Context, id auth.Identity, storeID int64, name string, edit inventory.Edit) (*catalog.Product, error)
}

// CreateUserRequest holds a new account. Role must be one of the three tiers.
type CreateUserRequest struct {
	Name     string         `json:"name"`
	Password string         `json:"password"`
	Location geo.Coordinate `json:"location"`
	Role     string         `json:"role"`
}

// UserChanges lists the fields to overwrite. Nil fields are kept.
type UserChanges struct {
	Name     *string         `json:"name,omitempty"`
	Password *string         `json:"password,omitempty"`
	Location *geo.Coordinate `json:"location,omitempty"`
	Role     *string         `json:"role,omitempty"`
}

// CreateProductRequest adds a product line to a store.
type CreateProductRequest struct {
	StoreID      int64           `json:"store_id"`
	Name         string          `json:"name"`
	Units        int             `json:"units"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}
