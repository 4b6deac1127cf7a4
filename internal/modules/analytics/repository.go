package analytics

import "context"

// Repository aggregates orders over the stores a manager runs.
type Repository interface {
	// PopularProducts ranks product names by order count, ties broken by name.
	PopularProducts(ctx context.Context, managerID int64, limit int) ([]ProductPopularity, error)
	// PopularCustomers ranks customers by order count, ties broken by customer id.
	PopularCustomers(ctx context.Context, managerID int64, limit int) ([]CustomerPopularity, error)
	// StoreOrders lists every order at the manager's stores, newest first.
	StoreOrders(ctx context.Context, managerID int64) ([]StoreOrder, error)
}
