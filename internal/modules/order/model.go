package order

import (
	"time"

	"github.com/google/uuid"
)

// RecentOrdersLimit caps the customer's order history listing.
const RecentOrdersLimit = 5

// Order is a single-product purchase at one store. Orders are immutable once placed.
type Order struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	StoreID      int64     `json:"store_id"`
	StoreName    string    `json:"store_name,omitempty"`
	ProductName  string    `json:"product_name"`
	UnitsOrdered int       `json:"units_ordered"`
	OrderTime    time.Time `json:"order_time"`
}

// PlaceOrderRequest is the payload for placing an order in one call.
type PlaceOrderRequest struct {
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}
