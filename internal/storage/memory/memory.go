// Package memory is an in-process implementation of every repository. A
// single mutex serializes all access, so each method is atomic in the same
// way a Postgres transaction is.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

type productKey struct {
	storeID int64
	name    string
}

// Store holds every table in maps and append-only slices.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	nextUserID      int64
	nextStoreID     int64
	nextWarehouseID int64

	users      map[int64]*user.User
	stores     map[int64]*catalog.Store
	warehouses map[int64]*catalog.Warehouse
	products   map[productKey]*catalog.Product

	orders   []*order.Order
	updates  []*inventory.ProductUpdate
	requests []*supply.Request
}

func New() *Store {
	return &Store{
		now:        func() time.Time { return time.Now().UTC() },
		users:      make(map[int64]*user.User),
		stores:     make(map[int64]*catalog.Store),
		warehouses: make(map[int64]*catalog.Warehouse),
		products:   make(map[productKey]*catalog.Product),
	}
}

// AddStore seeds a store. Stores have no create path in the application.
func (s *Store) AddStore(name string, loc geo.Coordinate, managerID int64) *catalog.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStoreID++
	st := &catalog.Store{ID: s.nextStoreID, Name: name, Location: loc, ManagerID: managerID}
	s.stores[st.ID] = st
	cp := *st
	return &cp
}

// AddWarehouse seeds a warehouse.
func (s *Store) AddWarehouse(area string, loc geo.Coordinate) *catalog.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWarehouseID++
	w := &catalog.Warehouse{ID: s.nextWarehouseID, Area: area, Location: loc}
	s.warehouses[w.ID] = w
	cp := *w
	return &cp
}

// Orders returns a copy of every order, oldest first.
func (s *Store) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = *o
	}
	return out
}

// ProductUpdates returns a copy of the audit trail, oldest first.
func (s *Store) ProductUpdates() []inventory.ProductUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]inventory.ProductUpdate, len(s.updates))
	for i, u := range s.updates {
		out[i] = *u
	}
	return out
}

// SupplyRequests returns a copy of every supply request, oldest first.
func (s *Store) SupplyRequests() []supply.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]supply.Request, len(s.requests))
	for i, r := range s.requests {
		out[i] = *r
	}
	return out
}

// ---- user.Repository ----

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByName(u.Name) != nil {
		return fmt.Errorf("%w: user name %q is taken", apperr.ErrConflict, u.Name)
	}
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) userByName(name string) *user.User {
	for _, u := range s.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

func (s *Store) GetUserByName(_ context.Context, name string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(name)
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", name, apperr.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) ListUsersByName(_ context.Context, name string) ([]*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*user.User
	for id := int64(1); id <= s.nextUserID; id++ {
		if u, ok := s.users[id]; ok && u.Name == name {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, upd user.Update) error {
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", apperr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	if upd.Name != nil {
		if other := s.userByName(*upd.Name); other != nil && other.ID != id {
			return fmt.Errorf("%w: user name %q is taken", apperr.ErrConflict, *upd.Name)
		}
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return nil
}

// DeleteUser refuses to remove a user still referenced by a store, order,
// audit row or supply request.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	if s.userReferenced(id) {
		return fmt.Errorf("%w: user %d is still referenced", apperr.ErrConflict, id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) userReferenced(id int64) bool {
	for _, st := range s.stores {
		if st.ManagerID == id {
			return true
		}
	}
	for _, o := range s.orders {
		if o.CustomerID == id {
			return true
		}
	}
	for _, u := range s.updates {
		if u.ManagerID == id {
			return true
		}
	}
	for _, r := range s.requests {
		if r.ManagerID == id {
			return true
		}
	}
	return false
}

// ---- catalog.Repository ----

func (s *Store) GetStore(_ context.Context, id int64) (*catalog.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[id]
	if !ok {
		return nil, fmt.Errorf("store %d: %w", id, apperr.ErrNotFound)
	}
	cp := *st
	return &cp, nil
}

func (s *Store) ListStores(_ context.Context) ([]*catalog.Store, error) {
	return s.listStores(func(*catalog.Store) bool { return true }), nil
}

func (s *Store) ListStoresByManager(_ context.Context, managerID int64) ([]*catalog.Store, error) {
	return s.listStores(func(st *catalog.Store) bool { return st.ManagerID == managerID }), nil
}

func (s *Store) listStores(keep func(*catalog.Store) bool) []*catalog.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*catalog.Store
	for id := int64(1); id <= s.nextStoreID; id++ {
		if st, ok := s.stores[id]; ok && keep(st) {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out
}

func (s *Store) GetProduct(_ context.Context, storeID int64, name string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productKey{storeID, name}]
	if !ok {
		return nil, fmt.Errorf("product %q at store %d: %w", name, storeID, apperr.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ListProducts(_ context.Context, storeID int64) ([]*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*catalog.Product
	for k, p := range s.products {
		if k.storeID == storeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortProducts(out)
	return out, nil
}

func (s *Store) CreateProduct(_ context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[p.StoreID]; !ok {
		return fmt.Errorf("%w: store %d does not exist", apperr.ErrConflict, p.StoreID)
	}
	k := productKey{p.StoreID, p.Name}
	if _, ok := s.products[k]; ok {
		return fmt.Errorf("%w: store %d already carries %q", apperr.ErrConflict, p.StoreID, p.Name)
	}
	if p.Units < 0 {
		return fmt.Errorf("%w: number of units cannot be negative", apperr.ErrInsufficientStock)
	}
	p.UpdatedAt = s.now()
	cp := *p
	s.products[k] = &cp
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, storeID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := productKey{storeID, name}
	if _, ok := s.products[k]; !ok {
		return fmt.Errorf("product %q at store %d: %w", name, storeID, apperr.ErrNotFound)
	}
	delete(s.products, k)
	return nil
}

func (s *Store) GetWarehouse(_ context.Context, id int64) (*catalog.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.warehouses[id]
	if !ok {
		return nil, fmt.Errorf("warehouse %d: %w", id, apperr.ErrNotFound)
	}
	cp := *w
	return &cp, nil
}

func sortProducts(ps []*catalog.Product) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
}
