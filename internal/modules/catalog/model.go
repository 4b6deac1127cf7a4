package catalog

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
)

// Store is a retail location run by exactly one manager.
type Store struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Location  geo.Coordinate `json:"location"`
	ManagerID int64          `json:"manager_id"`
}

// MaxUnits is the largest unit count a product, order or supply request may
// carry. Unit columns are INTEGER.
const MaxUnits = math.MaxInt32

// Product is keyed by (StoreID, Name). Names are only unique within a store.
type Product struct {
	StoreID      int64           `json:"store_id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Units        int             `json:"units"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool { return p.Units > 0 }

// Warehouse supplies stores. Only its existence matters to the workflows.
type Warehouse struct {
	ID       int64          `json:"id"`
	Area     string         `json:"area,omitempty"`
	Location geo.Coordinate `json:"location"`
}

// NearbyStore is a store within the eligibility radius of a user.
type NearbyStore struct {
	Store
	Distance float64 `json:"distance"`
}
