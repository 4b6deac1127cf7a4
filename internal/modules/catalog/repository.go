package catalog

import "context"

// Repository defines the interface for store, product and warehouse storage.
type Repository interface {
	GetStore(ctx context.Context, id int64) (*Store, error)
	ListStores(ctx context.Context) ([]*Store, error)
	ListStoresByManager(ctx context.Context, managerID int64) ([]*Store, error)

	GetProduct(ctx context.Context, storeID int64, name string) (*Product, error)
	ListProducts(ctx context.Context, storeID int64) ([]*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, storeID int64, name string) error

	GetWarehouse(ctx context.Context, id int64) (*Warehouse, error)
}
