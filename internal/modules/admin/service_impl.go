package admin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

type service struct {
	users     user.Repository
	catalog   catalog.Repository
	validator *catalog.Validator
	inventory inventory.Service
	resolver  *auth.Resolver
	logger    *zap.Logger
}

// NewService creates the admin directory. Product edits are delegated to
// the inventory service, which lets admins bypass store ownership.
func NewService(users user.Repository, catalogRepo catalog.Repository, inventorySvc inventory.Service, resolver *auth.Resolver, logger *zap.Logger) Service {
	return &service{
		users:     users,
		catalog:   catalogRepo,
		validator: catalog.NewValidator(catalogRepo),
		inventory: inventorySvc,
		resolver:  resolver,
		logger:    logger,
	}
}

func (s *service) CreateUser(ctx context.Context, id auth.Identity, req CreateUserRequest) (*user.User, error) {
	admin, err := s.resolver.Authorize(ctx, id, auth.AdministerUsers)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	hashed, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{Name: name, PasswordHash: hashed, Location: req.Location, Role: role}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %q: %w", name, err)
	}
	s.logger.Info("user created",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("user_id", u.ID),
		zap.String("role", string(u.Role)))
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id auth.Identity, userID int64) (*user.User, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.AdministerUsers); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}

func (s *service) FindUsers(ctx context.Context, id auth.Identity, name string) ([]*user.User, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.AdministerUsers); err != nil {
		return nil, err
	}
	return s.users.ListUsersByName(ctx, strings.TrimSpace(name))
}

func (s *service) UpdateUser(ctx context.Context, id auth.Identity, userID int64, changes UserChanges) (*user.User, error) {
	admin, err := s.resolver.Authorize(ctx, id, auth.AdministerUsers)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	upd, err := toUpdate(changes)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateUser(ctx, userID, upd); err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	s.logger.Info("user updated", zap.Int64("admin_id", admin.ID), zap.Int64("user_id", userID))
	return s.users.GetUserByID(ctx, userID)
}

func toUpdate(c UserChanges) (user.Update, error) {
	var upd user.Update
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return upd, fmt.Errorf("%w: name cannot be empty", apperr.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if c.Password != nil {
		hashed, err := user.HashPassword(*c.Password)
		if err != nil {
			return upd, err
		}
		upd.PasswordHash = &hashed
	}
	if c.Location != nil {
		loc := *c.Location
		upd.Location = &loc
	}
	if c.Role != nil {
		role, err := user.ParseRole(*c.Role)
		if err != nil {
			return upd, err
		}
		upd.Role = &role
	}
	if upd.Empty() {
		return upd, fmt.Errorf("%w: nothing to update", apperr.ErrInvalidInput)
	}
	return upd, nil
}

func (s *service) DeleteUser(ctx context.Context, id auth.Identity, userID int64) error {
	admin, err := s.resolver.Authorize(ctx, id, auth.AdministerUsers)
	if err != nil {
		return err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	s.logger.Info("user deleted", zap.Int64("admin_id", admin.ID), zap.Int64("user_id", userID))
	return nil
}

func (s *service) CreateProduct(ctx context.Context, id auth.Identity, req CreateProductRequest) (*catalog.Product, error) {
	admin, err := s.resolver.Authorize(ctx, id, auth.AdministerProducts)
	if err != nil {
		return nil, err
	}
	store, err := s.validator.ValidateStore(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: product name is required", apperr.ErrInvalidInput)
	case req.Units < 0:
		return nil, fmt.Errorf("%w: number of units cannot be negative", apperr.ErrInvalidInput)
	case req.Units > catalog.MaxUnits:
		return nil, fmt.Errorf("%w: at most %d units, got %d", apperr.ErrInvalidInput, catalog.MaxUnits, req.Units)
	case req.PricePerUnit.IsNegative():
		return nil, fmt.Errorf("%w: price cannot be negative", apperr.ErrInvalidInput)
	}

	p := &catalog.Product{StoreID: store.ID, Name: name, Units: req.Units, PricePerUnit: req.PricePerUnit}
	if err := s.catalog.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("store_id", store.ID),
		zap.String("product", p.Name))
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id auth.Identity, storeID int64, name string) error {
	admin, err := s.resolver.Authorize(ctx, id, auth.AdministerProducts)
	if err != nil {
		return err
	}
	store, err := s.validator.ValidateStore(ctx, storeID)
	if err != nil {
		return err
	}
	p, err := s.validator.ValidateProduct(ctx, store, name)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteProduct(ctx, store.ID, p.Name); err != nil {
		return err
	}
	s.logger.Info("product deleted",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("store_id", store.ID),
		zap.String("product", p.Name))
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, id auth.Identity, storeID int64, name string, edit inventory.Edit) (*catalog.Product, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.AdministerProducts); err != nil {
		return nil, err
	}
	return s.inventory.UpdateProduct(ctx, id, storeID, name, edit)
}
