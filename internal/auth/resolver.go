package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
)

// ErrPrincipalNotFound means the token subject no longer maps to a user.
var ErrPrincipalNotFound = errors.New("principal not found")

// IdentityResolver maps usernames to principals. Every call reads the store
// so role changes apply on the next request.
type IdentityResolver struct {
	users UserFinder
}

// NewIdentityResolver constructs a resolver.
func NewIdentityResolver(users UserFinder) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve loads the current principal for username.
func (r *IdentityResolver) Resolve(ctx context.Context, username string) (domain.Principal, error) {
	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Principal{}, ErrPrincipalNotFound
		}
		return domain.Principal{}, fmt.Errorf("resolve %q: %w", username, err)
	}
	return domain.PrincipalFromUser(user), nil
}
