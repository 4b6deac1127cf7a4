package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retail-ordering/internal/app/apptest"
	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
)

func TestUpdateProduct_ManagerOwnStore(t *testing.T) {
	f := apptest.New(t)

	p, err := f.Services.Inventory.UpdateProduct(context.Background(), apptest.Manager,
		apptest.DowntownID, "Widget", inventory.SetUnits(40))
	require.NoError(t, err)
	assert.Equal(t, 40, p.Units)
	assert.Equal(t, 40, f.Units(t, apptest.DowntownID, "Widget"))

	updates := f.Store.ProductUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, apptest.ManagerID, updates[0].ManagerID)
	assert.Equal(t, inventory.FieldUnits, updates[0].Field)
	assert.Len(t, f.Events.OfType(events.ProductUpdated), 1)
}

func TestUpdateProduct_ManagerOtherStoreIsDenied(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	require.NoError(t, f.Store.CreateProduct(ctx, &catalog.Product{
		StoreID: apptest.LakesideID, Name: "Widget", PricePerUnit: decimal.RequireFromString("4.00"), Units: 7,
	}))

	_, err := f.Services.Inventory.UpdateProduct(ctx, apptest.Manager,
		apptest.LakesideID, "Widget", inventory.SetPrice(decimal.NewFromInt(1)))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	assert.Empty(t, f.Store.ProductUpdates())
	assert.Empty(t, f.Events.Events())

	p, err := f.Store.GetProduct(ctx, apptest.LakesideID, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "4.00", p.PricePerUnit.StringFixed(2))
	assert.Equal(t, 7, p.Units)
}

func TestUpdateProduct_AdminAnyStore(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	p, err := f.Services.Inventory.UpdateProduct(ctx, apptest.Admin,
		apptest.UptownID, "Widget", inventory.SetPrice(decimal.RequireFromString("3.10")))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.10").Equal(p.PricePerUnit))

	updates := f.Store.ProductUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, apptest.AdminID, updates[0].ManagerID)
	assert.Equal(t, inventory.FieldPrice, updates[0].Field)
}

func TestUpdateProduct_Rejections(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	_, err := f.Services.Inventory.UpdateProduct(ctx, apptest.Customer, apptest.DowntownID, "Widget", inventory.SetUnits(1))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = f.Services.Inventory.UpdateProduct(ctx, apptest.Manager, apptest.DowntownID, "Widget", inventory.SetUnits(-1))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.Services.Inventory.UpdateProduct(ctx, apptest.Manager, apptest.DowntownID, "Nope", inventory.SetUnits(1))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, 10, f.Units(t, apptest.DowntownID, "Widget"))
	assert.Empty(t, f.Store.ProductUpdates())
}

func TestSelectStore(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	_, err := f.Services.Inventory.SelectStore(ctx, apptest.Manager, apptest.UptownID)
	assert.NoError(t, err)
	_, err = f.Services.Inventory.SelectStore(ctx, apptest.Manager, apptest.LakesideID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = f.Services.Inventory.SelectStore(ctx, apptest.Admin, apptest.LakesideID)
	assert.NoError(t, err)
	_, err = f.Services.Inventory.SelectStore(ctx, apptest.Admin, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecentUpdates_NewestFiveOfCaller(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	for n := 1; n <= 7; n++ {
		_, err := f.Services.Inventory.UpdateProduct(ctx, apptest.Manager, apptest.DowntownID, "Gadget", inventory.SetUnits(n))
		require.NoError(t, err)
	}
	_, err := f.Services.Inventory.UpdateProduct(ctx, apptest.Admin, apptest.DowntownID, "Widget", inventory.SetUnits(1))
	require.NoError(t, err)

	updates, err := f.Services.Inventory.RecentUpdates(ctx, apptest.Manager)
	require.NoError(t, err)
	require.Len(t, updates, inventory.RecentUpdatesLimit)
	for _, u := range updates {
		assert.Equal(t, apptest.ManagerID, u.ManagerID)
	}
	assert.False(t, updates[0].UpdatedOn.Before(updates[4].UpdatedOn))

	_, err = f.Services.Inventory.RecentUpdates(ctx, apptest.Customer)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}
