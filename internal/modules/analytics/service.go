package analytics

import (
	"context"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
)

// Service exposes manager-only reports scoped to the caller's own stores.
type Service interface {
	PopularProducts(ctx context.Context, id auth.Identity) ([]ProductPopularity, error)
	PopularCustomers(ctx context.Context, id auth.Identity) ([]CustomerPopularity, error)
	StoreOrders(ctx context.Context, id auth.Identity) ([]StoreOrder, error)
}

type service struct {
	repo     Repository
	resolver *auth.Resolver
}

func NewService(repo Repository, resolver *auth.Resolver) Service {
	return &service{repo: repo, resolver: resolver}
}

func (s *service) PopularProducts(ctx context.Context, id auth.Identity) ([]ProductPopularity, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ViewAnalytics)
	if err != nil {
		return nil, err
	}
	return s.repo.PopularProducts(ctx, u.ID, TopLimit)
}

func (s *service) PopularCustomers(ctx context.Context, id auth.Identity) ([]CustomerPopularity, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ViewAnalytics)
	if err != nil {
		return nil, err
	}
	return s.repo.PopularCustomers(ctx, u.ID, TopLimit)
}

func (s *service) StoreOrders(ctx context.Context, id auth.Identity) ([]StoreOrder, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.ViewAnalytics)
	if err != nil {
		return nil, err
	}
	return s.repo.StoreOrders(ctx, u.ID)
}
