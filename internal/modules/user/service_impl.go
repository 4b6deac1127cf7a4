package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
)

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         name,
		PasswordHash: hashed,
		Location:     req.Location,
		Role:         RoleCustomer,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}
	s.logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("name", u.Name))
	return u, nil
}

func (s *service) GetUser(ctx context.Context, name string) (*User, error) {
	return s.repo.GetUserByName(ctx, name)
}
