package inventory

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
)

// RecentUpdatesLimit caps the recent product updates listing.
const RecentUpdatesLimit = 5

var tracer = otel.Tracer("github.com/georgemunganga/retail-ordering/internal/modules/inventory")

// Service defines the manager and admin product edit path.
type Service interface {
	// SelectStore returns a store the caller may edit: any store for an
	// admin, only an owned store for a manager.
	SelectStore(ctx context.Context, id auth.Identity, storeID int64) (*catalog.Store, error)
	SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id auth.Identity, storeID int64, productName string, edit Edit) (*catalog.Product, error)
	RecentUpdates(ctx context.Context, id auth.Identity) ([]*ProductUpdate, error)
}

type service struct {
	repo      Repository
	validator *catalog.Validator
	resolver  *auth.Resolver
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(repo Repository, catalogRepo catalog.Repository, resolver *auth.Resolver, publisher events.Publisher, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		validator: catalog.NewValidator(catalogRepo),
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) SelectStore(ctx context.Context, id auth.Identity, storeID int64) (*catalog.Store, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ManageInventory)
	if err != nil {
		return nil, err
	}
	return s.editableStore(ctx, u, storeID)
}

func (s *service) editableStore(ctx context.Context, u *user.User, storeID int64) (*catalog.Store, error) {
	if u.Role == user.RoleAdmin {
		return s.validator.ValidateStore(ctx, storeID)
	}
	return s.validator.ValidateOwnership(ctx, u.ID, storeID)
}

func (s *service) SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.ManageInventory); err != nil {
		return nil, err
	}
	return s.validator.ValidateProduct(ctx, store, name)
}

func (s *service) UpdateProduct(ctx context.Context, id auth.Identity, storeID int64, productName string, edit Edit) (*catalog.Product, error) {
	ctx, span := tracer.Start(ctx, "inventory.UpdateProduct", trace.WithAttributes(
		attribute.Int64("store.id", storeID),
		attribute.String("product.name", productName),
	))
	defer span.End()

	p, err := s.updateProduct(ctx, id, storeID, productName, edit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return p, nil
}

func (s *service) updateProduct(ctx context.Context, id auth.Identity, storeID int64, productName string, edit Edit) (*catalog.Product, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ManageInventory)
	if err != nil {
		return nil, err
	}
	store, err := s.editableStore(ctx, u, storeID)
	if err != nil {
		return nil, err
	}
	product, err := s.validator.ValidateProduct(ctx, store, productName)
	if err != nil {
		return nil, err
	}

	change := edit.change(store.ID, product.Name, u.ID)
	updated, err := s.repo.ApplyChange(ctx, change)
	if err != nil {
		return nil, fmt.Errorf("update %q at store %d: %w", product.Name, store.ID, err)
	}

	s.logger.Info("product updated",
		zap.Int64("store_id", store.ID),
		zap.String("product", product.Name),
		zap.String("field", change.Field()),
		zap.Int64("actor_id", u.ID),
		zap.String("actor_role", string(u.Role)))
	s.publish(ctx, updated, change)
	return updated, nil
}

func (s *service) publish(ctx context.Context, p *catalog.Product, c Change) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:       events.ProductUpdated,
		Key:        fmt.Sprintf("store-%d", p.StoreID),
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"product": p,
			"field":   c.Field(),
			"actor":   c.ActorID,
		},
	})
	if err != nil {
		s.logger.Warn("publish product update", zap.Error(err))
	}
}

func (s *service) RecentUpdates(ctx context.Context, id auth.Identity) ([]*ProductUpdate, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ViewProductUpdates)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRecentUpdates(ctx, u.ID, RecentUpdatesLimit)
}
