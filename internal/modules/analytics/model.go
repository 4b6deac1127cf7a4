package analytics

import (
	"time"

	"github.com/google/uuid"
)

// TopLimit caps the popularity rankings.
const TopLimit = 5

// ProductPopularity counts orders for one product name across a manager's stores.
type ProductPopularity struct {
	ProductName string `json:"product_name"`
	Orders      int    `json:"orders"`
}

// CustomerPopularity counts one customer's orders at a manager's stores.
type CustomerPopularity struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Orders       int    `json:"orders"`
}

// StoreOrder is an order placed at one of the manager's stores.
type StoreOrder struct {
	OrderID      uuid.UUID `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	StoreID      int64     `json:"store_id"`
	ProductName  string    `json:"product_name"`
	UnitsOrdered int       `json:"units_ordered"`
	OrderTime    time.Time `json:"order_time"`
}
