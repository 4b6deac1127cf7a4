package session

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/admin"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

const (
	adminProductUpdate = 1
	adminUserUpdate    = 2
	adminViewUsers     = 3
	adminAddUser       = 4
	adminDeleteUser    = 5
	adminAddProduct    = 6
	adminDeleteProduct = 7
)

func (s *Session) adminMenu(ctx context.Context, id auth.Identity) error {
	if err := s.require(ctx, id, auth.AdministerUsers); err != nil {
		return err
	}
	s.term.WriteLine("\tPress 1 for product update")
	s.term.WriteLine("\tPress 2 for user update")
	s.term.WriteLine("\tPress 3 to view users")
	s.term.WriteLine("\tPress 4 to add a user")
	s.term.WriteLine("\tPress 5 to delete a user")
	s.term.WriteLine("\tPress 6 to add a product")
	s.term.WriteLine("\tPress 7 to delete a product")

	choice, err := s.term.PromptInt("Enter your selection")
	if err != nil {
		return err
	}
	switch choice {
	case adminProductUpdate:
		return s.updateProduct(ctx, id, s.svc.Admin.UpdateProduct)
	case adminUserUpdate:
		return s.adminUpdateUser(ctx, id)
	case adminViewUsers:
		return s.adminViewUsers(ctx, id)
	case adminAddUser:
		return s.adminAddUser(ctx, id)
	case adminDeleteUser:
		return s.adminDeleteUser(ctx, id)
	case adminAddProduct:
		return s.adminAddProduct(ctx, id)
	case adminDeleteProduct:
		return s.adminDeleteProduct(ctx, id)
	}
	s.term.WriteLine("Unrecognized choice!")
	return nil
}

// promptRole re-prompts until the answer is one of the three tiers.
func (s *Session) promptRole(label string) (string, error) {
	for {
		raw, err := s.term.Prompt(label)
		if err != nil {
			return "", err
		}
		if _, err := user.ParseRole(raw); err == nil {
			return raw, nil
		}
		s.term.WriteLine("\tInvalid user type. Choose either manager, customer, or admin.")
	}
}

func (s *Session) adminUpdateUser(ctx context.Context, id auth.Identity) error {
	var target *user.User
	err := s.retry(func() error {
		userID, err := s.term.PromptInt("Enter userID")
		if err != nil {
			return err
		}
		target, err = s.svc.Admin.GetUser(ctx, id, userID)
		return err
	})
	if err != nil {
		return err
	}

	s.term.WriteLine("\t1. Change user name.")
	s.term.WriteLine("\t2. Change user password.")
	s.term.WriteLine("\t3. Change user location.")
	s.term.WriteLine("\t4. Change user type.")

	var changes admin.UserChanges
	var done string
	for changes == (admin.UserChanges{}) {
		choice, err := s.term.PromptInt("Enter your selection")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			name, err := s.term.Prompt("Enter new user name for " + target.Name)
			if err != nil {
				return err
			}
			changes.Name, done = &name, "User name updated."
		case 2:
			pw, err := s.term.Prompt("Enter new password for " + target.Name)
			if err != nil {
				return err
			}
			changes.Password, done = &pw, "Password updated."
		case 3:
			loc, err := s.promptLocation("Enter new latitude", "Enter new longitude")
			if err != nil {
				return err
			}
			changes.Location, done = &loc, "Location updated."
		case 4:
			role, err := s.promptRole("Enter new user type")
			if err != nil {
				return err
			}
			changes.Role, done = &role, "User type updated."
		default:
			s.term.WriteLine("Unrecognized choice!")
		}
	}

	if _, err := s.svc.Admin.UpdateUser(ctx, id, target.ID, changes); err != nil {
		return err
	}
	s.term.WriteLine(done)
	return nil
}

func (s *Session) adminViewUsers(ctx context.Context, id auth.Identity) error {
	name, err := s.term.Prompt("Enter user name")
	if err != nil {
		return err
	}
	users, err := s.svc.Admin.FindUsers(ctx, id, name)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		s.term.WriteLine("\tInvalid user name.")
		return nil
	}
	for _, u := range users {
		s.term.Writef("\t%d  %s  (%.2f, %.2f)  %s",
			u.ID, u.Name, u.Location.Latitude, u.Location.Longitude, u.Role)
	}
	return nil
}

func (s *Session) adminAddUser(ctx context.Context, id auth.Identity) error {
	name, err := s.term.Prompt("Enter user name")
	if err != nil {
		return err
	}
	pw, err := s.term.Prompt("Enter new user pass")
	if err != nil {
		return err
	}
	loc, err := s.promptLocation("Enter new user latitude", "Enter new user longitude")
	if err != nil {
		return err
	}
	role, err := s.promptRole("Enter new user type")
	if err != nil {
		return err
	}
	u, err := s.svc.Admin.CreateUser(ctx, id, admin.CreateUserRequest{Name: name, Password: pw, Location: loc, Role: role})
	if err != nil {
		return err
	}
	s.term.Writef("User %s added with userID %d.", u.Name, u.ID)
	return nil
}

func (s *Session) adminDeleteUser(ctx context.Context, id auth.Identity) error {
	userID, err := s.term.PromptInt("Enter user ID")
	if err != nil {
		return err
	}
	if err := s.svc.Admin.DeleteUser(ctx, id, userID); err != nil {
		return err
	}
	s.term.WriteLine("User deleted.")
	return nil
}

func (s *Session) adminAddProduct(ctx context.Context, id auth.Identity) error {
	storeID, err := s.term.PromptInt("Enter store ID")
	if err != nil {
		return err
	}
	name, err := s.term.Prompt("Enter product name")
	if err != nil {
		return err
	}
	units, err := s.term.PromptInt("Enter number of units")
	if err != nil {
		return err
	}
	price, err := s.term.PromptDecimal("Enter price per unit")
	if err != nil {
		return err
	}
	p, err := s.svc.Admin.CreateProduct(ctx, id, admin.CreateProductRequest{
		StoreID: storeID, Name: name, Units: int(units), PricePerUnit: price,
	})
	if err != nil {
		return err
	}
	s.term.Writef("Product %s added to store %d.", p.Name, p.StoreID)
	return nil
}

func (s *Session) adminDeleteProduct(ctx context.Context, id auth.Identity) error {
	storeID, err := s.term.PromptInt("Enter store ID")
	if err != nil {
		return err
	}
	name, err := s.term.Prompt("Enter product name")
	if err != nil {
		return err
	}
	if err := s.svc.Admin.DeleteProduct(ctx, id, storeID, name); err != nil {
		return err
	}
	s.term.WriteLine("Product deleted.")
	return nil
}
