package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retail-ordering/internal/app/apptest"
	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
)

func place(t *testing.T, f *apptest.Fixture, who string, storeID int64, product string, units int) {
	t.Helper()
	_, err := f.Services.Orders.Place(context.Background(), apptest.Identity(who), order.PlaceOrderRequest{
		StoreID: storeID, ProductName: product, Units: units,
	})
	require.NoError(t, err)
}

func TestReports(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	place(t, f, "customer", apptest.DowntownID, "Widget", 1)
	place(t, f, "customer", apptest.UptownID, "Widget", 1)
	place(t, f, "customer", apptest.DowntownID, "Gadget", 1)
	place(t, f, "admin", apptest.DowntownID, "Widget", 1)

	products, err := f.Services.Analytics.PopularProducts(ctx, apptest.Manager)
	require.NoError(t, err)
	assert.Equal(t, []analytics.ProductPopularity{
		{ProductName: "Widget", Orders: 3},
		{ProductName: "Gadget", Orders: 1},
	}, products)

	customers, err := f.Services.Analytics.PopularCustomers(ctx, apptest.Manager)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "customer", customers[0].CustomerName)
	assert.Equal(t, 3, customers[0].Orders)

	orders, err := f.Services.Analytics.StoreOrders(ctx, apptest.Manager)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, "admin", orders[0].CustomerName)
}

func TestReports_ManagersOnly(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	_, err := f.Services.Analytics.PopularProducts(ctx, apptest.Customer)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = f.Services.Analytics.StoreOrders(ctx, apptest.Admin)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}

func TestReports_Empty(t *testing.T) {
	f := apptest.New(t)

	products, err := f.Services.Analytics.PopularProducts(context.Background(), apptest.Manager)
	require.NoError(t, err)
	assert.Empty(t, products)
}
