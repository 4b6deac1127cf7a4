package supply

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
)

var tracer = otel.Tracer("github.com/georgemunganga/retail-ordering/internal/modules/supply")

// Service defines the manager-only restock path.
type Service interface {
	// SelectStore returns storeID only if the caller manages it.
	SelectStore(ctx context.Context, id auth.Identity, storeID int64) (*catalog.Store, error)
	SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error)
	SelectWarehouse(ctx context.Context, id auth.Identity, warehouseID int64) (*catalog.Warehouse, error)
	// Submit re-validates every field, records the request and credits the stock.
	Submit(ctx context.Context, id auth.Identity, req SubmitRequest) (*Request, *catalog.Product, error)
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
	u, err := s.resolver.Authorize(ctx, id, auth.RequestSupply)
	if err != nil {
		return nil, err
	}
	return s.validator.ValidateOwnership(ctx, u.ID, storeID)
}

func (s *service) SelectProduct(ctx context.Context, id auth.Identity, store *catalog.Store, name string) (*catalog.Product, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.RequestSupply); err != nil {
		return nil, err
	}
	return s.validator.ValidateProduct(ctx, store, name)
}

func (s *service) SelectWarehouse(ctx context.Context, id auth.Identity, warehouseID int64) (*catalog.Warehouse, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.RequestSupply); err != nil {
		return nil, err
	}
	return s.validator.ValidateWarehouse(ctx, warehouseID)
}

// ValidateUnits rejects non-positive and oversized request sizes.
func ValidateUnits(units int) error {
	if units <= 0 {
		return fmt.Errorf("%w: units requested must be positive, got %d", apperr.ErrInvalidInput, units)
	}
	if units > catalog.MaxUnits {
		return fmt.Errorf("%w: at most %d units per request, got %d", apperr.ErrInvalidInput, catalog.MaxUnits, units)
	}
	return nil
}

func (s *service) Submit(ctx context.Context, id auth.Identity, req SubmitRequest) (*Request, *catalog.Product, error) {
	ctx, span := tracer.Start(ctx, "supply.Submit", trace.WithAttributes(
		attribute.Int64("store.id", req.StoreID),
		attribute.Int64("warehouse.id", req.WarehouseID),
		attribute.String("product.name", req.ProductName),
		attribute.Int("supply.units", req.Units),
	))
	defer span.End()

	r, p, err := s.submit(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	return r, p, nil
}

func (s *service) submit(ctx context.Context, id auth.Identity, req SubmitRequest) (*Request, *catalog.Product, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.RequestSupply)
	if err != nil {
		return nil, nil, err
	}
	store, err := s.validator.ValidateOwnership(ctx, u.ID, req.StoreID)
	if err != nil {
		return nil, nil, err
	}
	product, err := s.validator.ValidateProduct(ctx, store, req.ProductName)
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateUnits(req.Units); err != nil {
		return nil, nil, err
	}
	warehouse, err := s.validator.ValidateWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, nil, err
	}

	r := &Request{
		ID:             uuid.New(),
		ManagerID:      u.ID,
		WarehouseID:    warehouse.ID,
		StoreID:        store.ID,
		ProductName:    product.Name,
		UnitsRequested: req.Units,
	}
	updated, err := s.repo.SubmitRequest(ctx, r)
	if err != nil {
		return nil, nil, fmt.Errorf("supply request for %q: %w", product.Name, err)
	}

	s.logger.Info("supply requested",
		zap.String("request_id", r.ID.String()),
		zap.Int64("manager_id", u.ID),
		zap.Int64("warehouse_id", warehouse.ID),
		zap.Int64("store_id", store.ID),
		zap.String("product", product.Name),
		zap.Int("units", r.UnitsRequested),
		zap.Int("units_now", updated.Units))

	if err := s.publisher.Publish(ctx, events.Event{
		Type:       events.SupplyRequested,
		Key:        fmt.Sprintf("store-%d", r.StoreID),
		OccurredAt: time.Now().UTC(),
		Payload:    r,
	}); err != nil {
		s.logger.Warn("publish supply request", zap.String("request_id", r.ID.String()), zap.Error(err))
	}
	return r, updated, nil
}
