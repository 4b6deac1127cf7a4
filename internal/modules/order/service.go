package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
)

// ErrIneligibleStore is returned when a store lies outside the eligibility
// radius of the customer. It wraps apperr.ErrInvalidInput so the caller
// re-prompts for another store.
var ErrIneligibleStore = fmt.Errorf("%w: store is not within %.0f units of you", apperr.ErrInvalidInput, geo.EligibilityRadius)

var tracer = otel.Tracer("github.com/georgemunganga/retail-ordering/internal/modules/order")

// Service defines the order placement steps. Each step re-resolves the
// caller's role; nothing is cached between steps.
type Service interface {
	// SelectStore validates the store and the caller's proximity to it.
	SelectStore(ctx context.Context, id auth.Identity, storeID int64) (*catalog.Store, error)

	// SelectProduct validates that store carries name and has stock left.
	SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error)

	// SelectQuantity checks units against the product snapshot from SelectProduct.
	SelectQuantity(ctx context.Context, id auth.Identity, product *catalog.Product, units int) error

	// Commit writes the order and its stock decrement atomically.
	Commit(ctx context.Context, id auth.Identity, store *catalog.Store, product *catalog.Product, units int) (*Order, error)

	// Place runs every step in one call.
	Place(ctx context.Context, id auth.Identity, req PlaceOrderRequest) (*Order, error)

	// RecentOrders returns the caller's five newest orders.
	RecentOrders(ctx context.Context, id auth.Identity) ([]*Order, error)
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
	u, err := s.resolver.Authorize(ctx, id, auth.PlaceOrder)
	if err != nil {
		return nil, err
	}
	store, err := s.validator.ValidateStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !geo.IsEligible(u.Location, store.Location) {
		return nil, fmt.Errorf("store %d: %w", store.ID, ErrIneligibleStore)
	}
	return store, nil
}

func (s *service) SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.PlaceOrder); err != nil {
		return nil, err
	}
	p, err := s.validator.ValidateProduct(ctx, store, name)
	if err != nil {
		return nil, err
	}
	if !p.InStock() {
		return nil, fmt.Errorf("%w: %q is sold out at store %d", apperr.ErrInsufficientStock, p.Name, store.ID)
	}
	return p, nil
}

func (s *service) SelectQuantity(ctx context.Context, id auth.Identity, product *catalog.Product, units int) error {
	if _, err := s.resolver.Authorize(ctx, id, auth.PlaceOrder); err != nil {
		return err
	}
	return catalog.ValidateStock(product, units)
}

func (s *service) Commit(ctx context.Context, id auth.Identity, store *catalog.Store, product *catalog.Product, units int) (*Order, error) {
	ctx, span := tracer.Start(ctx, "order.Commit", trace.WithAttributes(
		attribute.Int64("store.id", store.ID),
		attribute.String("product.name", product.Name),
		attribute.Int("order.units", units),
	))
	defer span.End()

	o, err := s.commit(ctx, id, store, product, units)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", o.ID.String()))
	return o, nil
}

func (s *service) commit(ctx context.Context, id auth.Identity, store *catalog.Store, product *catalog.Product, units int) (*Order, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.PlaceOrder)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:           uuid.New(),
		CustomerID:   u.ID,
		StoreID:      store.ID,
		StoreName:    store.Name,
		ProductName:  product.Name,
		UnitsOrdered: units,
	}
	remaining, err := s.repo.PlaceOrder(ctx, o)
	if err != nil {
		s.logger.Warn("order aborted",
			zap.Int64("customer_id", u.ID),
			zap.Int64("store_id", store.ID),
			zap.String("product", product.Name),
			zap.Int("units", units),
			zap.Error(err))
		return nil, fmt.Errorf("place order for %q: %w", product.Name, err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int64("customer_id", u.ID),
		zap.Int64("store_id", store.ID),
		zap.String("product", product.Name),
		zap.Int("units", units),
		zap.Int("units_left", remaining.Units))

	if err := s.publisher.Publish(ctx, events.Event{
		Type:       events.OrderPlaced,
		Key:        fmt.Sprintf("store-%d", o.StoreID),
		OccurredAt: o.OrderTime,
		Payload:    o,
	}); err != nil {
		s.logger.Warn("publish order placed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
	return o, nil
}

func (s *service) Place(ctx context.Context, id auth.Identity, req PlaceOrderRequest) (*Order, error) {
	store, err := s.SelectStore(ctx, id, req.StoreID)
	if err != nil {
		return nil, err
	}
	product, err := s.SelectProduct(ctx, id, store, req.ProductName)
	if err != nil {
		return nil, err
	}
	if err := s.SelectQuantity(ctx, id, product, req.Units); err != nil {
		return nil, err
	}
	return s.Commit(ctx, id, store, product, req.Units)
}

func (s *service) RecentOrders(ctx context.Context, id auth.Identity) ([]*Order, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ViewOwnOrders)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRecentOrders(ctx, u.ID, RecentOrdersLimit)
}
