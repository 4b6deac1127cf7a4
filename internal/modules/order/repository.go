package order

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

// Repository defines data access for orders.
type Repository interface {
	// PlaceOrder inserts o and decrements the product's stock by
	// o.UnitsOrdered in one transaction. OrderTime is assigned by the store.
	// If the decrement cannot be satisfied nothing is written and the error
	// wraps apperr.ErrInsufficientStock.
	PlaceOrder(ctx context.Context, o *Order) (*catalog.Product, error)

	// ListRecentOrders returns the customer's newest orders first, with StoreName filled in.
	ListRecentOrders(ctx context.Context, customerID int64, limit int) ([]*Order, error)
}
