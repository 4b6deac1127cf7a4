package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
)

// applyChange mirrors inventory.ApplyDelta. Callers hold s.mu and must not
// have written anything they cannot undo before calling it.
func (s *Store) applyChange(c inventory.Change) (*catalog.Product, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, ok := s.products[productKey{c.StoreID, c.ProductName}]
	if !ok {
		return nil, fmt.Errorf("product %q at store %d: %w", c.ProductName, c.StoreID, apperr.ErrNotFound)
	}

	switch c.Kind {
	case inventory.OrderDecrement:
		if p.Units < c.Units {
			return nil, fmt.Errorf("%w: %d of %q requested, %d available",
				apperr.ErrInsufficientStock, c.Units, c.ProductName, p.Units)
		}
		p.Units -= c.Units
	case inventory.SupplyIncrement:
		if c.Units > catalog.MaxUnits-p.Units {
			return nil, fmt.Errorf("%w: adding %d units to %q would exceed %d",
				apperr.ErrInvalidInput, c.Units, c.ProductName, catalog.MaxUnits)
		}
		p.Units += c.Units
	case inventory.UnitsSet:
		p.Units = c.Units
	case inventory.PriceSet:
		p.PricePerUnit = c.Price
	}
	p.UpdatedAt = s.now()

	if c.Audited() {
		s.updates = append(s.updates, &inventory.ProductUpdate{
			ID:          uuid.New(),
			ManagerID:   c.ActorID,
			StoreID:     c.StoreID,
			ProductName: c.ProductName,
			Field:       c.Field(),
			UpdatedOn:   p.UpdatedAt,
		})
	}
	cp := *p
	return &cp, nil
}

// ---- inventory.Repository ----

func (s *Store) ApplyChange(_ context.Context, c inventory.Change) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyChange(c)
}

func (s *Store) ListRecentUpdates(_ context.Context, managerID int64, limit int) ([]*inventory.ProductUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*inventory.ProductUpdate
	for i := len(s.updates) - 1; i >= 0 && len(out) < limit; i-- {
		if u := s.updates[i]; u.ManagerID == managerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- order.Repository ----

// PlaceOrder decrements first so a failed decrement leaves no order behind.
func (s *Store) PlaceOrder(_ context.Context, o *order.Order) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[o.CustomerID]; !ok {
		return nil, fmt.Errorf("%w: customer %d does not exist", apperr.ErrConflict, o.CustomerID)
	}
	if o.UnitsOrdered <= 0 {
		return nil, fmt.Errorf("%w: units ordered must be positive", apperr.ErrInsufficientStock)
	}
	p, err := s.applyChange(inventory.Change{
		StoreID:     o.StoreID,
		ProductName: o.ProductName,
		Kind:        inventory.OrderDecrement,
		Units:       o.UnitsOrdered,
	})
	if err != nil {
		return nil, err
	}
	o.OrderTime = p.UpdatedAt
	cp := *o
	s.orders = append(s.orders, &cp)
	return p, nil
}

func (s *Store) ListRecentOrders(_ context.Context, customerID int64, limit int) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*order.Order
	for i := len(s.orders) - 1; i >= 0 && len(out) < limit; i-- {
		o := s.orders[i]
		if o.CustomerID != customerID {
			continue
		}
		cp := *o
		if st, ok := s.stores[o.StoreID]; ok {
			cp.StoreName = st.Name
		}
		out = append(out, &cp)
	}
	return out, nil
}

// ---- supply.Repository ----

func (s *Store) SubmitRequest(_ context.Context, r *supply.Request) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[r.WarehouseID]; !ok {
		return nil, fmt.Errorf("%w: warehouse %d does not exist", apperr.ErrConflict, r.WarehouseID)
	}
	if r.UnitsRequested <= 0 {
		return nil, fmt.Errorf("%w: units requested must be positive", apperr.ErrInvalidInput)
	}
	p, err := s.applyChange(inventory.Change{
		StoreID:     r.StoreID,
		ProductName: r.ProductName,
		Kind:        inventory.SupplyIncrement,
		Units:       r.UnitsRequested,
	})
	if err != nil {
		return nil, err
	}
	r.RequestedAt = p.UpdatedAt
	cp := *r
	s.requests = append(s.requests, &cp)
	return p, nil
}

// ---- analytics.Repository ----

func (s *Store) managedOrders(managerID int64) []*order.Order {
	var out []*order.Order
	for _, o := range s.orders {
		if st, ok := s.stores[o.StoreID]; ok && st.ManagerID == managerID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) PopularProducts(_ context.Context, managerID int64, limit int) ([]analytics.ProductPopularity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, o := range s.managedOrders(managerID) {
		counts[o.ProductName]++
	}
	out := make([]analytics.ProductPopularity, 0, len(counts))
	for name, n := range counts {
		out = append(out, analytics.ProductPopularity{ProductName: name, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) PopularCustomers(_ context.Context, managerID int64, limit int) ([]analytics.CustomerPopularity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int)
	for _, o := range s.managedOrders(managerID) {
		counts[o.CustomerID]++
	}
	out := make([]analytics.CustomerPopularity, 0, len(counts))
	for id, n := range counts {
		c := analytics.CustomerPopularity{CustomerID: id, Orders: n}
		if u, ok := s.users[id]; ok {
			c.CustomerName = u.Name
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) StoreOrders(_ context.Context, managerID int64) ([]analytics.StoreOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	managed := s.managedOrders(managerID)
	out := make([]analytics.StoreOrder, 0, len(managed))
	for i := len(managed) - 1; i >= 0; i-- {
		o := managed[i]
		so := analytics.StoreOrder{
			OrderID:      o.ID,
			StoreID:      o.StoreID,
			ProductName:  o.ProductName,
			UnitsOrdered: o.UnitsOrdered,
			OrderTime:    o.OrderTime,
		}
		if u, ok := s.users[o.CustomerID]; ok {
			so.CustomerName = u.Name
		}
		out = append(out, so)
	}
	return out, nil
}
