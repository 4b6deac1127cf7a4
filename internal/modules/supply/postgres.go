package supply

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SubmitRequest(ctx context.Context, req *Request) (*catalog.Product, error) {
	var product *catalog.Product
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO product_supply_requests
				(request_id, manager_id, warehouse_id, store_id, product_name, units_requested)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING requested_at`,
			req.ID, req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.UnitsRequested,
		).Scan(&req.RequestedAt)
		if err != nil {
			return fmt.Errorf("insert supply request: %w", database.Classify(err))
		}

		product, err = inventory.ApplyDelta(ctx, tx, inventory.Change{
			StoreID:     req.StoreID,
			ProductName: req.ProductName,
			Kind:        inventory.SupplyIncrement,
			Units:       req.UnitsRequested,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
