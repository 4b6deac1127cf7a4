package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
)

// Resolver maps an identity to its current role. It never caches: a role
// changed by an admin takes effect on the very next call.
type Resolver struct {
	users  user.Repository
	logger *zap.Logger
}

func NewResolver(users user.Repository, logger *zap.Logger) *Resolver {
	return &Resolver{users: users, logger: logger}
}

// RoleOf returns the identity's role, or apperr.ErrNotFound.
func (r *Resolver) RoleOf(ctx context.Context, id Identity) (user.Role, error) {
	u, err := r.users.GetUserByName(ctx, id.Name)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// Authorize loads the identity's current record and checks it carries c.
// An unknown identity is denied rather than reported as not found.
func (r *Resolver) Authorize(ctx context.Context, id Identity, c Capability) (*user.User, error) {
	u, err := r.users.GetUserByName(ctx, id.Name)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown identity %q", apperr.ErrAccessDenied, id.Name)
	}
	if err != nil {
		return nil, err
	}
	if !Allows(u.Role, c) {
		r.logger.Warn("access denied",
			zap.String("identity", id.Name),
			zap.String("role", string(u.Role)),
			zap.Stringer("capability", c))
		return nil, fmt.Errorf("%w: %s may not %s", apperr.ErrAccessDenied, u.Role, c)
	}
	return u, nil
}
