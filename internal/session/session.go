// Package session runs the interactive menu loop over a terminal. The
// signed-in identity lives on the stack of Run and is passed explicitly to
// every service call.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/admin"
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/platform/terminal"
)

// Services are the module services a session drives.
type Services struct {
	Users     user.Service
	Auth      auth.Service
	Resolver  *auth.Resolver
	Catalog   catalog.Service
	Orders    order.Service
	Inventory inventory.Service
	Supply    supply.Service
	Admin     admin.Service
	Analytics analytics.Service
}

type Session struct {
	svc    Services
	term   *terminal.Terminal
	logger *zap.Logger
}

func New(svc Services, term *terminal.Terminal, logger *zap.Logger) *Session {
	return &Session{svc: svc, term: term, logger: logger}
}

const (
	mainCreateUser = 1
	mainLogIn      = 2
	mainExit       = 9
)

// Run shows the main menu until the user exits or input ends. No workflow
// failure ends the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.term.WriteLine("MAIN MENU")
		s.term.WriteLine("---------")
		s.term.WriteLine("1. Create user")
		s.term.WriteLine("2. Log in")
		s.term.WriteLine("9. < EXIT")

		choice, err := s.term.PromptInt("Please make your choice")
		if err != nil {
			return closed(err)
		}

		switch choice {
		case mainCreateUser:
			err = s.createUser(ctx)
		case mainLogIn:
			var id auth.Identity
			var ok bool
			if id, ok, err = s.logIn(ctx); err == nil && ok {
				err = s.userMenu(ctx, id)
			}
		case mainExit:
			s.term.WriteLine("Bye!")
			return nil
		default:
			s.term.WriteLine("Unrecognized choice!")
		}
		if err := s.report(err); err != nil {
			return closed(err)
		}
	}
}

// report prints a workflow error and swallows it. Only terminal errors
// propagate.
func (s *Session) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, terminal.ErrClosed), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, apperr.ErrAccessDenied):
		s.term.WriteLine("You do not have access to this feature!")
	case errors.Is(err, apperr.ErrPersistence):
		s.logger.Error("operation failed", zap.Error(err))
		s.term.WriteLine("\tThe operation failed and nothing was changed. Please try again later.")
	default:
		s.term.Writef("\t%v", err)
	}
	return nil
}

func closed(err error) error {
	if errors.Is(err, terminal.ErrClosed) {
		return nil
	}
	return err
}

func (s *Session) createUser(ctx context.Context) error {
	name, err := s.term.Prompt("Enter name")
	if err != nil {
		return err
	}
	password, err := s.term.Prompt("Enter password")
	if err != nil {
		return err
	}
	loc, err := s.promptLocation("Enter latitude", "Enter longitude")
	if err != nil {
		return err
	}
	if _, err := s.svc.Users.Register(ctx, user.RegisterRequest{Name: name, Password: password, Location: loc}); err != nil {
		return err
	}
	s.term.WriteLine("User successfully created!")
	return nil
}

func (s *Session) logIn(ctx context.Context) (auth.Identity, bool, error) {
	name, err := s.term.Prompt("Enter name")
	if err != nil {
		return auth.Identity{}, false, err
	}
	password, err := s.term.Prompt("Enter password")
	if err != nil {
		return auth.Identity{}, false, err
	}
	id, err := s.svc.Auth.Login(ctx, name, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.term.WriteLine("\tInvalid name or password.")
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, err
	}
	s.logger.Info("session started", zap.String("identity", id.Name))
	return id, true, nil
}

const (
	menuNearbyStores    = 1
	menuProductList     = 2
	menuPlaceOrder      = 3
	menuRecentOrders    = 4
	menuUpdateProduct   = 5
	menuRecentUpdates   = 6
	menuPopularProducts = 7
	menuPopularCustomer = 8
	menuSupplyRequest   = 9
	menuManagerOrders   = 10
	menuAdmin           = 11
	menuLogOut          = 20
)

func (s *Session) userMenu(ctx context.Context, id auth.Identity) error {
	for {
		s.term.WriteLine("MAIN MENU")
		s.term.WriteLine("---------")
		s.term.WriteLine("1. View Stores within 30 miles")
		s.term.WriteLine("2. View Product List")
		s.term.WriteLine("3. Place a Order")
		s.term.WriteLine("4. View 5 recent orders")
		s.term.WriteLine("5. Update Product")
		s.term.WriteLine("6. View 5 recent Product Updates Info")
		s.term.WriteLine("7. View 5 Popular Items")
		s.term.WriteLine("8. View 5 Popular Customers")
		s.term.WriteLine("9. Place Product Supply Request to Warehouse")
		s.term.WriteLine("10. Check Manager Order Info")
		s.term.WriteLine("11. Admin Update")
		s.term.WriteLine(".........................")
		s.term.WriteLine("20. Log out")

		choice, err := s.term.PromptInt("Please make your choice")
		if err != nil {
			return err
		}

		switch choice {
		case menuNearbyStores:
			err = s.nearbyStores(ctx, id)
		case menuProductList:
			err = s.productList(ctx, id)
		case menuPlaceOrder:
			_, err = order.NewWorkflow(s.svc.Orders, s.term).Run(ctx, id)
		case menuRecentOrders:
			err = s.recentOrders(ctx, id)
		case menuUpdateProduct:
			err = s.updateProduct(ctx, id, s.svc.Inventory.UpdateProduct)
		case menuRecentUpdates:
			err = s.recentUpdates(ctx, id)
		case menuPopularProducts:
			err = s.popularProducts(ctx, id)
		case menuPopularCustomer:
			err = s.popularCustomers(ctx, id)
		case menuSupplyRequest:
			err = s.supplyRequest(ctx, id)
		case menuManagerOrders:
			err = s.managerOrders(ctx, id)
		case menuAdmin:
			err = s.adminMenu(ctx, id)
		case menuLogOut:
			s.logger.Info("session ended", zap.String("identity", id.Name))
			return nil
		default:
			s.term.WriteLine("Unrecognized choice!")
		}
		if err := s.report(err); err != nil {
			return err
		}
	}
}

// require fails fast, before any prompt, when the caller lacks c.
func (s *Session) require(ctx context.Context, id auth.Identity, c auth.Capability) error {
	_, err := s.svc.Resolver.Authorize(ctx, id, c)
	return err
}

// retry repeats step while it fails with a recoverable error.
func (s *Session) retry(step func() error) error {
	for {
		err := step()
		if err == nil || !apperr.Recoverable(err) {
			return err
		}
		s.term.Writef("\t%v", err)
	}
}
