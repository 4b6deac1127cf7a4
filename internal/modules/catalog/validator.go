package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
)

// Validator resolves identifiers against the catalog before anything is
// mutated. Its answers come from a snapshot read; the atomic write that
// follows has the final say on stock.
type Validator struct {
	repo Repository
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

func (v *Validator) ValidateStore(ctx context.Context, id int64) (*Store, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: store id must be positive", apperr.ErrInvalidInput)
	}
	return v.repo.GetStore(ctx, id)
}

// ValidateProduct looks name up within store only.
func (v *Validator) ValidateProduct(ctx context.Context, store *Store, name string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperr.ErrInvalidInput)
	}
	return v.repo.GetProduct(ctx, store.ID, name)
}

func (v *Validator) ValidateWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: warehouse id must be positive", apperr.ErrInvalidInput)
	}
	return v.repo.GetWarehouse(ctx, id)
}

// ValidateOwnership returns the store only if it appears in the manager's
// own store list. Any other store id, existing or not, is denied.
func (v *Validator) ValidateOwnership(ctx context.Context, managerID, storeID int64) (*Store, error) {
	stores, err := v.repo.ListStoresByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	for _, s := range stores {
		if s.ID == storeID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: you do not manage store %d", apperr.ErrAccessDenied, storeID)
}

// ValidateStock rejects non-positive quantities and quantities above the
// product's current unit count.
func ValidateStock(p *Product, requested int) error {
	if requested <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", apperr.ErrInsufficientStock, requested)
	}
	if requested > p.Units {
		return fmt.Errorf("%w: %d of %q requested, %d available",
			apperr.ErrInsufficientStock, requested, p.Name, p.Units)
	}
	return nil
}
