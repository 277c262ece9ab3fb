package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/hiring-service/internal/auth"
	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

const usernameTakenMessage = "Username is already taken!"

// RegisterInput describes a registration request.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     domain.Role
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	verifier   *auth.CredentialVerifier
	tokens     *auth.TokenManager
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Verifier   *auth.CredentialVerifier
	Tokens     *auth.TokenManager
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		verifier:   deps.Verifier,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		now:        time.Now,
	}
}

// Register creates a new account. The plaintext password is hashed before it
// leaves this function and is never stored or logged.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", input.Role))
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict(usernameTakenMessage)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(usernameTakenMessage)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *auth.Claims, error) {
	principal, err := s.verifier.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return "", nil, apperrors.NewBadCredentials()
		}
		return "", nil, err
	}
	return s.tokens.Issue(principal.Username, s.now())
}
