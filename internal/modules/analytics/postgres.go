package analytics

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/retail-ordering/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) PopularProducts(ctx context.Context, managerID int64, limit int) ([]ProductPopularity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.product_name, COUNT(*) AS orders
		FROM orders o
		JOIN store s ON s.store_id = o.store_id
		WHERE s.manager_id = $1
		GROUP BY o.product_name
		ORDER BY orders DESC, o.product_name
		LIMIT $2`, managerID, limit)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var out []ProductPopularity
	for rows.Next() {
		var p ProductPopularity
		if err := rows.Scan(&p.ProductName, &p.Orders); err != nil {
			return nil, database.Classify(err)
		}
		out = append(out, p)
	}
	return out, database.Classify(rows.Err())
}

func (r *postgresRepo) PopularCustomers(ctx context.Context, managerID int64, limit int) ([]CustomerPopularity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.user_id, u.name, COUNT(*) AS orders
		FROM orders o
		JOIN store s ON s.store_id = o.store_id
		JOIN users u ON u.user_id = o.customer_id
		WHERE s.manager_id = $1
		GROUP BY u.user_id, u.name
		ORDER BY orders DESC, u.user_id
		LIMIT $2`, managerID, limit)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var out []CustomerPopularity
	for rows.Next() {
		var c CustomerPopularity
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.Orders); err != nil {
			return nil, database.Classify(err)
		}
		out = append(out, c)
	}
	return out, database.Classify(rows.Err())
}

func (r *postgresRepo) StoreOrders(ctx context.Context, managerID int64) ([]StoreOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.order_id, u.name, o.store_id, o.product_name, o.units_ordered, o.order_time
		FROM orders o
		JOIN store s ON s.store_id = o.store_id
		JOIN users u ON u.user_id = o.customer_id
		WHERE s.manager_id = $1
		ORDER BY o.order_time DESC`, managerID)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var out []StoreOrder
	for rows.Next() {
		var o StoreOrder
		if err := rows.Scan(&o.OrderID, &o.CustomerName, &o.StoreID, &o.ProductName, &o.UnitsOrdered, &o.OrderTime); err != nil {
			return nil, database.Classify(err)
		}
		out = append(out, o)
	}
	return out, database.Classify(rows.Err())
}
