package supply

import (
	"time"

	"github.com/google/uuid"
)

// Request is a manager's restock order against a warehouse. Stock is
// credited as soon as the request is recorded.
type Request struct {
	ID             uuid.UUID `json:"id"`
	ManagerID      int64     `json:"manager_id"`
	WarehouseID    int64     `json:"warehouse_id"`
	StoreID        int64     `json:"store_id"`
	ProductName    string    `json:"product_name"`
	UnitsRequested int       `json:"units_requested"`
	RequestedAt    time.Time `json:"requested_at"`
}

// SubmitRequest is the payload for filing a supply request in one call.
type SubmitRequest struct {
	StoreID     int64  `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
	WarehouseID int64  `json:"warehouse_id"`
}
