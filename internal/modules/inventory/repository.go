package inventory

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

// Repository defines the interface for stock mutation and the audit trail.
type Repository interface {
	// ApplyChange performs c atomically and returns the product as written.
	// Audited changes append their ProductUpdate row in the same transaction.
	// A decrement that would leave negative stock fails with
	// apperr.ErrInsufficientStock and changes nothing.
	ApplyChange(ctx context.Context, c Change) (*catalog.Product, error)
	ListRecentUpdates(ctx context.Context, managerID int64, limit int) ([]*ProductUpdate, error)
}
