package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

// ChangeKind selects how a Change rewrites a product row.
type ChangeKind int

const (
	// OrderDecrement subtracts Units, and fails rather than go below zero.
	OrderDecrement ChangeKind = iota
	// SupplyIncrement adds Units.
	SupplyIncrement
	// UnitsSet overwrites the unit count. Audited.
	UnitsSet
	// PriceSet overwrites the unit price. Audited.
	PriceSet
)

func (k ChangeKind) String() string {
	switch k {
	case OrderDecrement:
		return "order decrement"
	case SupplyIncrement:
		return "supply increment"
	case UnitsSet:
		return "set units"
	case PriceSet:
		return "set price"
	}
	return "unknown change"
}

// Audit field names recorded in ProductUpdate.Field.
const (
	FieldUnits = "number_of_units"
	FieldPrice = "price_per_unit"
)

// Change is a single stock or price mutation of one product.
type Change struct {
	StoreID     int64
	ProductName string
	Kind        ChangeKind
	Units       int
	Price       decimal.Decimal
	// ActorID is the manager or admin behind an audited change.
	ActorID int64
}

// Audited reports whether the change must leave a ProductUpdate row behind.
func (c Change) Audited() bool {
	return c.Kind == UnitsSet || c.Kind == PriceSet
}

// Field is the column an audited change touches.
func (c Change) Field() string {
	if c.Kind == PriceSet {
		return FieldPrice
	}
	return FieldUnits
}

// Validate rejects changes that can never succeed, before any storage is touched.
func (c Change) Validate() error {
	if c.StoreID <= 0 || strings.TrimSpace(c.ProductName) == "" {
		return fmt.Errorf("%w: change needs a store and a product", apperr.ErrInvalidInput)
	}
	switch c.Kind {
	case OrderDecrement, SupplyIncrement:
		if c.Units <= 0 {
			return fmt.Errorf("%w: %s needs a positive unit count, got %d", apperr.ErrInvalidInput, c.Kind, c.Units)
		}
	case UnitsSet:
		if c.Units < 0 {
			return fmt.Errorf("%w: number of units cannot be negative", apperr.ErrInvalidInput)
		}
	case PriceSet:
		if c.Price.IsNegative() {
			return fmt.Errorf("%w: price cannot be negative", apperr.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown change kind %d", apperr.ErrInvalidInput, int(c.Kind))
	}
	if c.Kind != PriceSet && c.Units > catalog.MaxUnits {
		return fmt.Errorf("%w: at most %d units, got %d", apperr.ErrInvalidInput, catalog.MaxUnits, c.Units)
	}
	if c.Audited() && c.ActorID <= 0 {
		return fmt.Errorf("%w: %s needs an acting manager", apperr.ErrInvalidInput, c.Kind)
	}
	return nil
}

// ProductUpdate is the append-only audit row left by a manager or admin edit.
type ProductUpdate struct {
	ID          uuid.UUID `json:"id"`
	ManagerID   int64     `json:"manager_id"`
	StoreID     int64     `json:"store_id"`
	ProductName string    `json:"product_name"`
	Field       string    `json:"field"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Edit is a manager or admin product edit. Build one with SetUnits or SetPrice.
type Edit struct {
	kind  ChangeKind
	units int
	price decimal.Decimal
}

func SetUnits(n int) Edit { return Edit{kind: UnitsSet, units: n} }

func SetPrice(p decimal.Decimal) Edit { return Edit{kind: PriceSet, price: p} }

func (e Edit) change(storeID int64, productName string, actorID int64) Change {
	return Change{
		StoreID:     storeID,
		ProductName: productName,
		Kind:        e.kind,
		Units:       e.units,
		Price:       e.price,
		ActorID:     actorID,
	}
}
