package order

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

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) PlaceOrder(ctx context.Context, o *Order) (*catalog.Product, error) {
	var product *catalog.Product
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (order_id, customer_id, store_id, product_name, units_ordered)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING order_time`,
			o.ID, o.CustomerID, o.StoreID, o.ProductName, o.UnitsOrdered,
		).Scan(&o.OrderTime)
		if err != nil {
			return fmt.Errorf("insert order: %w", database.Classify(err))
		}

		product, err = inventory.ApplyDelta(ctx, tx, inventory.Change{
			StoreID:     o.StoreID,
			ProductName: o.ProductName,
			Kind:        inventory.OrderDecrement,
			Units:       o.UnitsOrdered,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *postgresRepository) ListRecentOrders(ctx context.Context, customerID int64, limit int) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.order_id, o.customer_id, o.store_id, s.name, o.product_name, o.units_ordered, o.order_time
		FROM orders o
		JOIN store s ON s.store_id = o.store_id
		WHERE o.customer_id = $1
		ORDER BY o.order_time DESC
		LIMIT $2`, customerID, limit)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		err := rows.Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.StoreName, &o.ProductName, &o.UnitsOrdered, &o.OrderTime)
		if err != nil {
			return nil, database.Classify(err)
		}
		orders = append(orders, o)
	}
	return orders, database.Classify(rows.Err())
}
