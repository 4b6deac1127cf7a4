package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

var maxUnits = strconv.Itoa(catalog.MaxUnits)

const returningProduct = `
	RETURNING store_id, product_name, price_per_unit, number_of_units, updated_at`

// Each statement is a single conditional write; there is no read-then-write
// window for a concurrent session to slip into.
var changeStatements = map[ChangeKind]string{
	OrderDecrement: `
		UPDATE product SET number_of_units = number_of_units - $3, updated_at = now()
		WHERE store_id = $1 AND product_name = $2 AND number_of_units >= $3` + returningProduct,
	SupplyIncrement: `
		UPDATE product SET number_of_units = number_of_units + $3, updated_at = now()
		WHERE store_id = $1 AND product_name = $2 AND number_of_units <= ` + maxUnits + ` - $3` + returningProduct,
	UnitsSet: `
		UPDATE product SET number_of_units = $3, updated_at = now()
		WHERE store_id = $1 AND product_name = $2` + returningProduct,
	PriceSet: `
		UPDATE product SET price_per_unit = $3, updated_at = now()
		WHERE store_id = $1 AND product_name = $2` + returningProduct,
}

// ApplyDelta runs c against q, which is expected to be a transaction when
// the caller pairs the stock write with another insert. Audited changes
// append their ProductUpdate row through q as well.
func ApplyDelta(ctx context.Context, q database.Querier, c Change) (*catalog.Product, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var arg interface{} = c.Units
	if c.Kind == PriceSet {
		arg = c.Price
	}
	p, err := catalog.ScanProduct(q.QueryRowContext(ctx, changeStatements[c.Kind], c.StoreID, c.ProductName, arg).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, missOrShortage(ctx, q, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%s of %q at store %d: %w", c.Kind, c.ProductName, c.StoreID, database.Classify(err))
	}

	if c.Audited() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO product_updates (update_id, manager_id, store_id, product_name, field)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), c.ActorID, c.StoreID, c.ProductName, c.Field())
		if err != nil {
			return nil, fmt.Errorf("audit %s of %q: %w", c.Kind, c.ProductName, database.Classify(err))
		}
	}
	return p, nil
}

// missOrShortage tells an absent product apart from a decrement or
// increment whose condition failed.
func missOrShortage(ctx context.Context, q database.Querier, c Change) error {
	var units int
	err := q.QueryRowContext(ctx,
		`SELECT number_of_units FROM product WHERE store_id = $1 AND product_name = $2`,
		c.StoreID, c.ProductName).Scan(&units)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("product %q at store %d: %w", c.ProductName, c.StoreID, apperr.ErrNotFound)
	}
	if err != nil {
		return database.Classify(err)
	}
	if c.Kind == SupplyIncrement {
		return fmt.Errorf("%w: adding %d units to %q would exceed %d",
			apperr.ErrInvalidInput, c.Units, c.ProductName, catalog.MaxUnits)
	}
	return fmt.Errorf("%w: %d of %q requested, %d available",
		apperr.ErrInsufficientStock, c.Units, c.ProductName, units)
}

func (r *postgresRepo) ApplyChange(ctx context.Context, c Change) (*catalog.Product, error) {
	var p *catalog.Product
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		p, err = ApplyDelta(ctx, tx, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListRecentUpdates(ctx context.Context, managerID int64, limit int) ([]*ProductUpdate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT update_id, manager_id, store_id, product_name, field, updated_on
		FROM product_updates
		WHERE manager_id = $1
		ORDER BY updated_on DESC
		LIMIT $2`, managerID, limit)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var updates []*ProductUpdate
	for rows.Next() {
		u := &ProductUpdate{}
		if err := rows.Scan(&u.ID, &u.ManagerID, &u.StoreID, &u.ProductName, &u.Field, &u.UpdatedOn); err != nil {
			return nil, database.Classify(err)
		}
		updates = append(updates, u)
	}
	return updates, database.Classify(rows.Err())
}
