package session

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
)

func (s *Session) promptLocation(latLabel, longLabel string) (geo.Coordinate, error) {
	lat, err := s.term.PromptFloat(latLabel)
	if err != nil {
		return geo.Coordinate{}, err
	}
	long, err := s.term.PromptFloat(longLabel)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.Coordinate{Latitude: lat, Longitude: long}, nil
}

func (s *Session) nearbyStores(ctx context.Context, id auth.Identity) error {
	stores, err := s.svc.Catalog.NearbyStores(ctx, id)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		s.term.WriteLine("\tNo stores within 30 miles.")
		return nil
	}
	for _, st := range stores {
		s.term.Writef("\tStore %d: %s (%.2f away)", st.ID, st.Name, st.Distance)
	}
	return nil
}

func (s *Session) productList(ctx context.Context, id auth.Identity) error {
	var products []*catalog.Product
	err := s.retry(func() error {
		storeID, err := s.term.PromptInt("Enter store ID")
		if err != nil {
			return err
		}
		products, err = s.svc.Catalog.ListProducts(ctx, id, storeID)
		return err
	})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		s.term.WriteLine("\tThis store carries no products.")
		return nil
	}
	for _, p := range products {
		s.term.Writef("\t%s: %d units at %s per unit", p.Name, p.Units, p.PricePerUnit.StringFixed(2))
	}
	return nil
}

func (s *Session) recentOrders(ctx context.Context, id auth.Identity) error {
	orders, err := s.svc.Orders.RecentOrders(ctx, id)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.term.WriteLine("\tYou have not placed any orders.")
		return nil
	}
	for _, o := range orders {
		s.term.Writef("\tStore %d (%s): %d x %s on %s",
			o.StoreID, o.StoreName, o.UnitsOrdered, o.ProductName, o.OrderTime.Format(timeLayout))
	}
	return nil
}
