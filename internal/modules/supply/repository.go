package supply

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
)

// Repository defines data access for supply requests.
type Repository interface {
	// SubmitRequest records r and credits r.UnitsRequested to the product in
	// one transaction. RequestedAt is assigned by the store.
	SubmitRequest(ctx context.Context, r *Request) (*catalog.Product, error)
}
