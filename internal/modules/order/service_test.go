package order_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/retail-ordering/internal/app/apptest"
	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
)

func TestPlace_DecrementsStockAndRecordsOrder(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	o, err := f.Services.Orders.Place(ctx, apptest.Customer, order.PlaceOrderRequest{
		StoreID: apptest.DowntownID, ProductName: "Widget", Units: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, apptest.CustomerID, o.CustomerID)
	assert.Equal(t, 4, o.UnitsOrdered)
	assert.False(t, o.OrderTime.IsZero())
	assert.Equal(t, 6, f.Units(t, apptest.DowntownID, "Widget"))

	_, err = f.Services.Orders.Place(ctx, apptest.Customer, order.PlaceOrderRequest{
		StoreID: apptest.DowntownID, ProductName: "Widget", Units: 7,
	})
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 6, f.Units(t, apptest.DowntownID, "Widget"))

	assert.Len(t, f.Store.Orders(), 1)
	assert.Len(t, f.Events.OfType(events.OrderPlaced), 1)
	assert.Empty(t, f.Store.ProductUpdates())
}

func TestSelectStore(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	_, err := f.Services.Orders.SelectStore(ctx, apptest.Customer, apptest.LakesideID)
	assert.ErrorIs(t, err, order.ErrIneligibleStore)
	assert.True(t, apperr.Recoverable(err))

	_, err = f.Services.Orders.SelectStore(ctx, apptest.Customer, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.Services.Orders.SelectStore(ctx, apptest.Stranger, apptest.DowntownID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	store, err := f.Services.Orders.SelectStore(ctx, apptest.Manager, apptest.UptownID)
	require.NoError(t, err)
	assert.Equal(t, "Uptown", store.Name)
}

func TestSelectProduct_SoldOut(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	store, err := f.Services.Orders.SelectStore(ctx, apptest.Customer, apptest.DowntownID)
	require.NoError(t, err)

	_, err = f.Services.Orders.SelectProduct(ctx, apptest.Customer, store, "Sprocket")
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	_, err = f.Services.Orders.SelectProduct(ctx, apptest.Customer, store, "Doohickey")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommit_LostRaceLeavesNothingBehind(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	svc := f.Services.Orders

	store, err := svc.SelectStore(ctx, apptest.Customer, apptest.DowntownID)
	require.NoError(t, err)
	product, err := svc.SelectProduct(ctx, apptest.Customer, store, "Widget")
	require.NoError(t, err)
	require.NoError(t, svc.SelectQuantity(ctx, apptest.Customer, product, 8))

	_, err = svc.Place(ctx, apptest.Manager, order.PlaceOrderRequest{StoreID: store.ID, ProductName: "Widget", Units: 5})
	require.NoError(t, err)

	_, err = svc.Commit(ctx, apptest.Customer, store, product, 8)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, 5, f.Units(t, apptest.DowntownID, "Widget"))
	assert.Len(t, f.Store.Orders(), 1)
}

func TestPlace_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()
	require.NoError(t, f.Store.CreateProduct(ctx, &catalog.Product{
		StoreID: apptest.DowntownID, Name: "Gizmo", Units: 5, PricePerUnit: decimal.NewFromInt(1),
	}))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		placed  int
		refused int
	)
	for _, units := range []int{3, 4} {
		wg.Add(1)
		go func(units int) {
			defer wg.Done()
			_, err := f.Services.Orders.Place(ctx, apptest.Customer, order.PlaceOrderRequest{
				StoreID: apptest.DowntownID, ProductName: "Gizmo", Units: units,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				placed++
			} else if assert.ErrorIs(t, err, apperr.ErrInsufficientStock) {
				refused++
			}
		}(units)
	}
	wg.Wait()

	assert.Equal(t, 1, placed)
	assert.Equal(t, 1, refused)
	left := f.Units(t, apptest.DowntownID, "Gizmo")
	assert.Contains(t, []int{1, 2}, left)
	assert.Len(t, f.Store.Orders(), 1)
}

func TestRecentOrders(t *testing.T) {
	f := apptest.New(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := f.Services.Orders.Place(ctx, apptest.Customer, order.PlaceOrderRequest{
			StoreID: apptest.UptownID, ProductName: "Widget", Units: i + 1,
		})
		require.NoError(t, err)
	}
	_, err := f.Services.Orders.Place(ctx, apptest.Manager, order.PlaceOrderRequest{
		StoreID: apptest.DowntownID, ProductName: "Gadget", Units: 1,
	})
	require.NoError(t, err)

	orders, err := f.Services.Orders.RecentOrders(ctx, apptest.Customer)
	require.NoError(t, err)
	require.Len(t, orders, order.RecentOrdersLimit)
	assert.Equal(t, 6, orders[0].UnitsOrdered)
	assert.Equal(t, 2, orders[4].UnitsOrdered)
	assert.Equal(t, "Uptown", orders[0].StoreName)
}
