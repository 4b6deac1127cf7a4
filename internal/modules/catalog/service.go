package catalog

import (
	"context"
	"sort"

	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/geo"
)

// Service defines catalog browsing for any signed-in user.
type Service interface {
	// NearbyStores lists every store the caller is eligible to order from,
	// closest first.
	NearbyStores(ctx context.Context, id auth.Identity) ([]NearbyStore, error)
	ListProducts(ctx context.Context, id auth.Identity, storeID int64) ([]*Product, error)
}

type service struct {
	repo      Repository
	validator *Validator
	resolver  *auth.Resolver
}

func NewService(repo Repository, resolver *auth.Resolver) Service {
	return &service{repo: repo, validator: NewValidator(repo), resolver: resolver}
}

func (s *service) NearbyStores(ctx context.Context, id auth.Identity) ([]NearbyStore, error) {
	u, err := s.resolver.Authorize(ctx, id, auth.BrowseCatalog)
	if err != nil {
		return nil, err
	}
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyStore, 0, len(stores))
	for _, st := range stores {
		if !geo.IsEligible(u.Location, st.Location) {
			continue
		}
		nearby = append(nearby, NearbyStore{Store: *st, Distance: geo.Distance(u.Location, st.Location)})
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	return nearby, nil
}

func (s *service) ListProducts(ctx context.Context, id auth.Identity, storeID int64) ([]*Product, error) {
	if _, err := s.resolver.Authorize(ctx, id, auth.BrowseCatalog); err != nil {
		return nil, err
	}
	if _, err := s.validator.ValidateStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.repo.ListProducts(ctx, storeID)
}
