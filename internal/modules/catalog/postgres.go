package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const (
	selectStore   = `SELECT store_id, name, latitude, longitude, manager_id FROM store`
	selectProduct = `SELECT store_id, product_name, price_per_unit, number_of_units, updated_at FROM product`
)

func scanStore(scan func(...interface{}) error) (*Store, error) {
	s := &Store{}
	if err := scan(&s.ID, &s.Name, &s.Location.Latitude, &s.Location.Longitude, &s.ManagerID); err != nil {
		return nil, err
	}
	return s, nil
}

// ScanProduct reads one row shaped like selectProduct. The inventory
// statements RETURNING the same columns reuse it.
func ScanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	if err := scan(&p.StoreID, &p.Name, &p.PricePerUnit, &p.Units, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetStore(ctx context.Context, id int64) (*Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, selectStore+` WHERE store_id = $1`, id).Scan)
	if err != nil {
		return nil, fmt.Errorf("store %d: %w", id, database.Classify(err))
	}
	return s, nil
}

func (r *postgresRepo) ListStores(ctx context.Context) ([]*Store, error) {
	return r.listStores(ctx, selectStore+` ORDER BY store_id`)
}

func (r *postgresRepo) ListStoresByManager(ctx context.Context, managerID int64) ([]*Store, error) {
	return r.listStores(ctx, selectStore+` WHERE manager_id = $1 ORDER BY store_id`, managerID)
}

func (r *postgresRepo) listStores(ctx context.Context, query string, args ...interface{}) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s, err := scanStore(rows.Scan)
		if err != nil {
			return nil, database.Classify(err)
		}
		stores = append(stores, s)
	}
	return stores, database.Classify(rows.Err())
}

func (r *postgresRepo) GetProduct(ctx context.Context, storeID int64, name string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, selectProduct+` WHERE store_id = $1 AND product_name = $2`, storeID, name)
	p, err := ScanProduct(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("product %q at store %d: %w", name, storeID, database.Classify(err))
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, storeID int64) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProduct+` WHERE store_id = $1 ORDER BY product_name`, storeID)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := ScanProduct(rows.Scan)
		if err != nil {
			return nil, database.Classify(err)
		}
		products = append(products, p)
	}
	return products, database.Classify(rows.Err())
}

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product (store_id, product_name, number_of_units, price_per_unit)
		VALUES ($1, $2, $3, $4)
		RETURNING updated_at`,
		p.StoreID, p.Name, p.Units, p.PricePerUnit,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product %q at store %d: %w", p.Name, p.StoreID, database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, storeID int64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product WHERE store_id = $1 AND product_name = $2`, storeID, name)
	if err != nil {
		return database.Classify(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %q at store %d: %w", name, storeID, apperr.ErrNotFound)
	}
	return nil
}

func (r *postgresRepo) GetWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	w := &Warehouse{}
	err := r.db.QueryRowContext(ctx,
		`SELECT warehouse_id, area, latitude, longitude FROM warehouse WHERE warehouse_id = $1`, id,
	).Scan(&w.ID, &w.Area, &w.Location.Latitude, &w.Location.Longitude)
	if err != nil {
		return nil, fmt.Errorf("warehouse %d: %w", id, database.Classify(err))
	}
	return w, nil
}
