package memory_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/storage/memory"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	require.NoError(t, s.SeedDemo(context.Background()))
	return s
}

func TestCreateUser_UniqueName(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	u := &user.User{Name: "ann", PasswordHash: "x", Role: user.RoleCustomer}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := s.CreateUser(ctx, &user.User{Name: "ann", PasswordHash: "y", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	p, err := s.GetProduct(ctx, 1, "Widget")
	require.NoError(t, err)
	p.Units = 1000

	again, err := s.GetProduct(ctx, 1, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Units)
}

func TestDeleteUser_Referenced(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.PlaceOrder(ctx, &order.Order{ID: uuid.New(), CustomerID: 3, StoreID: 1, ProductName: "Widget", UnitsOrdered: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteUser(ctx, 2), apperr.ErrConflict)
	assert.ErrorIs(t, s.DeleteUser(ctx, 3), apperr.ErrConflict)
	assert.ErrorIs(t, s.DeleteUser(ctx, 99), apperr.ErrNotFound)

	u := &user.User{Name: "temp", PasswordHash: "x", Role: user.RoleCustomer}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NoError(t, s.DeleteUser(ctx, u.ID))
}

func TestPlaceOrder_ShortageLeavesNoOrder(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.PlaceOrder(ctx, &order.Order{ID: uuid.New(), CustomerID: 3, StoreID: 1, ProductName: "Gadget", UnitsOrdered: 4})
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	_, err = s.PlaceOrder(ctx, &order.Order{ID: uuid.New(), CustomerID: 3, StoreID: 1, ProductName: "Nope", UnitsOrdered: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, s.Orders())

	p, err := s.PlaceOrder(ctx, &order.Order{ID: uuid.New(), CustomerID: 3, StoreID: 1, ProductName: "Gadget", UnitsOrdered: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Units)
	assert.Len(t, s.Orders(), 1)
}

func TestApplyChange_AuditsOnlyEdits(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.ApplyChange(ctx, inventory.Change{StoreID: 1, ProductName: "Widget", Kind: inventory.SupplyIncrement, Units: 2})
	require.NoError(t, err)
	assert.Empty(t, s.ProductUpdates())

	p, err := s.ApplyChange(ctx, inventory.Change{
		StoreID: 1, ProductName: "Widget", Kind: inventory.PriceSet, Price: decimal.RequireFromString("9.99"), ActorID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Units)
	assert.Equal(t, "9.99", p.PricePerUnit.StringFixed(2))

	updates := s.ProductUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, inventory.FieldPrice, updates[0].Field)

	recent, err := s.ListRecentUpdates(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
	recent, err = s.ListRecentUpdates(ctx, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSubmitRequest_StockStaysInRange(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.SubmitRequest(ctx, &supply.Request{
		ID: uuid.New(), ManagerID: 2, WarehouseID: 1, StoreID: 1, ProductName: "Widget", UnitsRequested: math.MaxInt,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = s.ApplyChange(ctx, inventory.Change{
		StoreID: 1, ProductName: "Widget", Kind: inventory.UnitsSet, Units: catalog.MaxUnits - 5, ActorID: 2,
	})
	require.NoError(t, err)
	_, err = s.SubmitRequest(ctx, &supply.Request{
		ID: uuid.New(), ManagerID: 2, WarehouseID: 1, StoreID: 1, ProductName: "Widget", UnitsRequested: 6,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	p, err := s.GetProduct(ctx, 1, "Widget")
	require.NoError(t, err)
	assert.Equal(t, catalog.MaxUnits-5, p.Units)
	assert.Empty(t, s.SupplyRequests())

	p, err = s.ApplyChange(ctx, inventory.Change{StoreID: 1, ProductName: "Widget", Kind: inventory.SupplyIncrement, Units: 5})
	require.NoError(t, err)
	assert.Equal(t, catalog.MaxUnits, p.Units)
}

func TestSubmitRequest_UnknownWarehouse(t *testing.T) {
	s := seeded(t)

	_, err := s.SubmitRequest(context.Background(), &supply.Request{
		ID: uuid.New(), ManagerID: 2, WarehouseID: 7, StoreID: 1, ProductName: "Widget", UnitsRequested: 1,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Empty(t, s.SupplyRequests())
}

func TestCreateProduct(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	err := s.CreateProduct(ctx, &catalog.Product{StoreID: 1, Name: "Widget"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	st := s.AddStore("Solo", geo.Coordinate{Latitude: 1, Longitude: 1}, 1)
	require.NoError(t, s.CreateProduct(ctx, &catalog.Product{StoreID: st.ID, Name: "Widget", Units: 1}))
	assert.ErrorIs(t, s.CreateProduct(ctx, &catalog.Product{StoreID: st.ID, Name: "Widget"}), apperr.ErrConflict)

	require.NoError(t, s.DeleteProduct(ctx, st.ID, "Widget"))
	assert.ErrorIs(t, s.DeleteProduct(ctx, st.ID, "Widget"), apperr.ErrNotFound)
}
