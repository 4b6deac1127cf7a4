package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

type service struct {
	userRepo user.Repository
	jwtKey   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewService creates a new auth service. jwtKey signs HTTP identity tokens.
func NewService(userRepo user.Repository, jwtKey []byte, ttl time.Duration, logger *zap.Logger) Service {
	return &service{userRepo: userRepo, jwtKey: jwtKey, ttl: ttl, logger: logger}
}

func (s *service) Login(ctx context.Context, name, password string) (Identity, error) {
	u, err := s.userRepo.GetUserByName(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}

	if !user.CheckPassword(u.PasswordHash, password) {
		s.logger.Info("login rejected", zap.String("name", name))
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Name: u.Name}, nil
}

func (s *service) IssueToken(id Identity) (string, error) {
	if len(s.jwtKey) == 0 {
		return "", errors.New("jwt signing key is not configured")
	}
	claims := &jwt.StandardClaims{
		Subject:   id.Name,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (s *service) ParseToken(tokenString string) (Identity, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Name: claims.Subject}, nil
}
