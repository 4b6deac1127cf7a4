package session

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
)

const timeLayout = "2006-01-02 15:04:05"

// productUpdater applies an edit. Managers go through the inventory service,
// admins through the admin directory.
type productUpdater func(ctx context.Context, id auth.Identity, storeID int64, name string, edit inventory.Edit) (*catalog.Product, error)

func (s *Session) updateProduct(ctx context.Context, id auth.Identity, apply productUpdater) error {
	if err := s.require(ctx, id, auth.ManageInventory); err != nil {
		return err
	}

	var store *catalog.Store
	err := s.retry(func() error {
		storeID, err := s.term.PromptInt("Enter store ID")
		if err != nil {
			return err
		}
		store, err = s.svc.Inventory.SelectStore(ctx, id, storeID)
		return err
	})
	if err != nil {
		return err
	}

	var product *catalog.Product
	err = s.retry(func() error {
		name, err := s.term.Prompt("Enter product name")
		if err != nil {
			return err
		}
		product, err = s.svc.Inventory.SelectProduct(ctx, id, store, name)
		return err
	})
	if err != nil {
		return err
	}

	s.term.WriteLine("\t1. Change number of units.")
	s.term.WriteLine("\t2. Change the price per unit.")
	for {
		choice, err := s.term.PromptInt("Enter your selection")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			return s.retry(func() error {
				n, err := s.term.PromptInt("Enter new amount of units")
				if err != nil {
					return err
				}
				p, err := apply(ctx, id, store.ID, product.Name, inventory.SetUnits(int(n)))
				if err != nil {
					return err
				}
				s.term.Writef("Product quantity updated. %s now has %d units.", p.Name, p.Units)
				return nil
			})
		case 2:
			return s.retry(func() error {
				price, err := s.term.PromptDecimal("Enter new price per unit")
				if err != nil {
					return err
				}
				p, err := apply(ctx, id, store.ID, product.Name, inventory.SetPrice(price))
				if err != nil {
					return err
				}
				s.term.Writef("Product price updated. %s now costs %s.", p.Name, p.PricePerUnit.StringFixed(2))
				return nil
			})
		default:
			s.term.WriteLine("Unrecognized choice!")
		}
	}
}

func (s *Session) recentUpdates(ctx context.Context, id auth.Identity) error {
	updates, err := s.svc.Inventory.RecentUpdates(ctx, id)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		s.term.WriteLine("\tNo product updates yet.")
		return nil
	}
	for _, u := range updates {
		s.term.Writef("\t%s  store %d  %s  %s  %s",
			u.ID.String()[:8], u.StoreID, u.ProductName, u.Field, u.UpdatedOn.Format(timeLayout))
	}
	return nil
}

func (s *Session) popularProducts(ctx context.Context, id auth.Identity) error {
	top, err := s.svc.Analytics.PopularProducts(ctx, id)
	if err != nil {
		return err
	}
	for i, p := range top {
		s.term.Writef("\t%d. %s (%d orders)", i+1, p.ProductName, p.Orders)
	}
	return nil
}

func (s *Session) popularCustomers(ctx context.Context, id auth.Identity) error {
	top, err := s.svc.Analytics.PopularCustomers(ctx, id)
	if err != nil {
		return err
	}
	for i, c := range top {
		s.term.Writef("\t%d. %s (%d orders)", i+1, c.CustomerName, c.Orders)
	}
	return nil
}

func (s *Session) supplyRequest(ctx context.Context, id auth.Identity) error {
	if err := s.require(ctx, id, auth.RequestSupply); err != nil {
		return err
	}
	_, err := supply.NewWorkflow(s.svc.Supply, s.term).Run(ctx, id)
	return err
}

func (s *Session) managerOrders(ctx context.Context, id auth.Identity) error {
	orders, err := s.svc.Analytics.StoreOrders(ctx, id)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.term.WriteLine("\tNo orders at your stores.")
		return nil
	}
	for _, o := range orders {
		s.term.Writef("\t%s  %s  store %d  %d x %s  %s",
			o.OrderID.String()[:8], o.CustomerName, o.StoreID, o.UnitsOrdered, o.ProductName, o.OrderTime.Format(timeLayout))
	}
	return nil
}
