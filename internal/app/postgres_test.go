package app_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/app"
	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/config"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
	"github.com/georgemunganga/retail-ordering/internal/session"
)

// openTestDB connects to RETAIL_TEST_DATABASE_URL and empties every table.
func openTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("RETAIL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RETAIL_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := database.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE users, store, product, warehouse, orders,
		product_updates, product_supply_requests RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

type pgFixture struct {
	db       *sql.DB
	svc      session.Services
	managers [2]int64
	storeID  int64
}

func newPGFixture(t *testing.T) *pgFixture {
	db := openTestDB(t)
	ctx := context.Background()
	repos := app.PostgresRepositories(db)

	hash, err := user.HashPassword("pw")
	require.NoError(t, err)
	f := &pgFixture{db: db}
	for i, u := range []*user.User{
		{Name: "m1", PasswordHash: hash, Role: user.RoleManager},
		{Name: "m2", PasswordHash: hash, Role: user.RoleManager},
		{Name: "c1", PasswordHash: hash, Role: user.RoleCustomer},
		{Name: "c2", PasswordHash: hash, Role: user.RoleCustomer},
	} {
		require.NoError(t, repos.Users.CreateUser(ctx, u))
		if i < 2 {
			f.managers[i] = u.ID
		}
	}

	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO store (name, latitude, longitude, manager_id) VALUES ('Main', 1, 1, $1) RETURNING store_id`,
		f.managers[0]).Scan(&f.storeID))
	_, err = db.ExecContext(ctx, `INSERT INTO warehouse (area) VALUES ('North')`)
	require.NoError(t, err)
	require.NoError(t, repos.Catalog.CreateProduct(ctx, &catalog.Product{
		StoreID: f.storeID, Name: "Widget", Units: 5, PricePerUnit: decimal.RequireFromString("2.50"),
	}))

	cfg := &config.Config{JWTSecret: "test", JWTTTL: time.Hour}
	f.svc = app.NewServices(repos, cfg, &events.Recorder{}, zap.NewNop())
	return f
}

func (f *pgFixture) count(t *testing.T, table string) int {
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func (f *pgFixture) units(t *testing.T) int {
	var n int
	require.NoError(t, f.db.QueryRow(
		`SELECT number_of_units FROM product WHERE store_id = $1 AND product_name = 'Widget'`, f.storeID).Scan(&n))
	return n
}

func TestPostgres_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, c := range []struct {
		name  string
		units int
	}{{"c1", 3}, {"c2", 4}} {
		wg.Add(1)
		go func(i int, name string, units int) {
			defer wg.Done()
			_, errs[i] = f.svc.Orders.Place(ctx, auth.Identity{Name: name}, order.PlaceOrderRequest{
				StoreID: f.storeID, ProductName: "Widget", Units: units,
			})
		}(i, c.name, c.units)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Contains(t, []int{1, 2}, f.units(t))
	assert.Equal(t, 1, f.count(t, "orders"))
}

func TestPostgres_UnownedStoreEditLeavesNoTrace(t *testing.T) {
	f := newPGFixture(t)

	_, err := f.svc.Inventory.UpdateProduct(context.Background(), auth.Identity{Name: "m2"},
		f.storeID, "Widget", inventory.SetPrice(decimal.NewFromInt(9)))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	assert.Equal(t, 0, f.count(t, "product_updates"))

	p, err := f.svc.Inventory.UpdateProduct(context.Background(), auth.Identity{Name: "m1"},
		f.storeID, "Widget", inventory.SetUnits(0))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Units)
	assert.Equal(t, 1, f.count(t, "product_updates"))
}

func TestPostgres_SupplyRequestCreditsStock(t *testing.T) {
	f := newPGFixture(t)

	_, p, err := f.svc.Supply.Submit(context.Background(), auth.Identity{Name: "m1"}, supply.SubmitRequest{
		StoreID: f.storeID, ProductName: "Widget", Units: 7, WarehouseID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Units)
	assert.Equal(t, 1, f.count(t, "product_supply_requests"))

	_, _, err = f.svc.Supply.Submit(context.Background(), auth.Identity{Name: "m1"}, supply.SubmitRequest{
		StoreID: f.storeID, ProductName: "Widget", Units: 7, WarehouseID: 2,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 12, f.units(t))
}

func TestPostgres_SupplyCannotOverflowUnits(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	_, err := f.svc.Inventory.UpdateProduct(ctx, auth.Identity{Name: "m1"},
		f.storeID, "Widget", inventory.SetUnits(catalog.MaxUnits-5))
	require.NoError(t, err)

	_, _, err = f.svc.Supply.Submit(ctx, auth.Identity{Name: "m1"}, supply.SubmitRequest{
		StoreID: f.storeID, ProductName: "Widget", Units: 6, WarehouseID: 1,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Equal(t, catalog.MaxUnits-5, f.units(t))
	assert.Equal(t, 0, f.count(t, "product_supply_requests"))
}

func TestPostgres_DeleteReferencedUserConflicts(t *testing.T) {
	f := newPGFixture(t)
	repos := app.PostgresRepositories(f.db)

	err := repos.Users.DeleteUser(context.Background(), f.managers[0])
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, repos.Users.DeleteUser(context.Background(), f.managers[1]))
}
