package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "demo"

// SeedDemo loads a small data set so the interactive client is usable
// without a database: one account per role, two stores run by the
// manager, a warehouse and a handful of products.
func (s *Store) SeedDemo(ctx context.Context) error {
	hash, err := user.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	home := geo.Coordinate{Latitude: 10, Longitude: 10}
	accounts := []struct {
		name string
		role user.Role
	}{
		{"admin", user.RoleAdmin},
		{"manager", user.RoleManager},
		{"customer", user.RoleCustomer},
	}
	ids := make(map[user.Role]int64, len(accounts))
	for _, a := range accounts {
		u := &user.User{Name: a.name, PasswordHash: hash, Location: home, Role: a.role}
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", a.name, err)
		}
		ids[a.role] = u.ID
	}

	downtown := s.AddStore("Downtown", geo.Coordinate{Latitude: 12, Longitude: 14}, ids[user.RoleManager])
	uptown := s.AddStore("Uptown", geo.Coordinate{Latitude: 20, Longitude: 25}, ids[user.RoleManager])
	s.AddStore("Lakeside", geo.Coordinate{Latitude: 80, Longitude: 80}, ids[user.RoleAdmin])
	s.AddWarehouse("Central", geo.Coordinate{Latitude: 50, Longitude: 50})

	products := []catalog.Product{
		{StoreID: downtown.ID, Name: "Widget", PricePerUnit: decimal.RequireFromString("2.50"), Units: 10},
		{StoreID: downtown.ID, Name: "Gadget", PricePerUnit: decimal.RequireFromString("7.99"), Units: 3},
		{StoreID: downtown.ID, Name: "Sprocket", PricePerUnit: decimal.RequireFromString("0.75"), Units: 0},
		{StoreID: uptown.ID, Name: "Widget", PricePerUnit: decimal.RequireFromString("2.65"), Units: 25},
	}
	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}
	return nil
}
