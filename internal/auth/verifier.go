package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
)

// ErrBadCredentials is returned for every failed login, whether the user is
// unknown or the password is wrong.
var ErrBadCredentials = errors.New("bad credentials")

// dummyPassword is hashed once so unknown usernames still pay for a bcrypt
// comparison.
const dummyPassword = "hiring-service-dummy-password"

// UserFinder looks up credential records by username.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CredentialVerifier checks username/password pairs against the user store.
type CredentialVerifier struct {
	users     UserFinder
	dummyHash string
}

// NewCredentialVerifier constructs a verifier. cost should match the cost used
// at registration so both login paths take comparable time.
func NewCredentialVerifier(users UserFinder, cost int) (*CredentialVerifier, error) {
	dummy, err := HashPassword(dummyPassword, cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &CredentialVerifier{users: users, dummyHash: dummy}, nil
}

// Authenticate returns the principal for a valid username/password pair.
func (v *CredentialVerifier) Authenticate(ctx context.Context, username, password string) (domain.Principal, error) {
	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = ComparePassword(v.dummyHash, password)
			return domain.Principal{}, ErrBadCredentials
		}
		return domain.Principal{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return domain.Principal{}, ErrBadCredentials
	}
	return domain.PrincipalFromUser(user), nil
}
