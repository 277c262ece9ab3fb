package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hiring-service/internal/domain"
)

const bearerScheme = "Bearer "

// authState is the outcome of inspecting a request's credentials. Only
// authStateAuthenticated binds a principal; the rest leave the request
// anonymous and let the policy decide.
type authState int

const (
	authStateNoToken authState = iota
	authStateInvalidToken
	authStateUnknownSubject
	authStateAuthenticated
)

func (s authState) String() string {
	switch s {
	case authStateNoToken:
		return "no_token"
	case authStateInvalidToken:
		return "invalid_token"
	case authStateUnknownSubject:
		return "unknown_subject"
	case authStateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type authOutcome struct {
	state     authState
	principal domain.Principal
	err       error
}

// AuthMiddleware validates bearer tokens and binds the caller's principal to
// the request context. It never rejects a request itself.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver *IdentityResolver
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver *IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, resolver: resolver, logger: logger}
}

// Handle authenticates the request when possible and always continues the chain.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if _, bound := PrincipalFromContext(ctx); bound {
		return c.Next()
	}

	outcome := m.authenticate(ctx, c.Get(fiber.HeaderAuthorization))
	switch outcome.state {
	case authStateAuthenticated:
		c.SetUserContext(WithPrincipal(ctx, outcome.principal))
	case authStateInvalidToken, authStateUnknownSubject:
		fields := []zap.Field{
			zap.String("state", outcome.state.String()),
			zap.String("path", c.Path()),
			zap.Error(outcome.err),
		}
		if errors.Is(outcome.err, ErrInvalidToken) || errors.Is(outcome.err, ErrPrincipalNotFound) {
			m.logger.Debug("request proceeds unauthenticated", fields...)
		} else {
			m.logger.Warn("identity resolution failed", fields...)
		}
	case authStateNoToken:
	}
	return c.Next()
}

func (m *AuthMiddleware) authenticate(ctx context.Context, header string) authOutcome {
	if header == "" {
		return authOutcome{state: authStateNoToken}
	}
	token, ok := bearerToken(header)
	if !ok {
		return authOutcome{state: authStateInvalidToken, err: ErrTokenMalformed}
	}

	claims, err := m.tokens.Decode(token)
	if err != nil {
		return authOutcome{state: authStateInvalidToken, err: err}
	}

	principal, err := m.resolver.Resolve(ctx, claims.Username())
	if err != nil {
		return authOutcome{state: authStateUnknownSubject, err: err}
	}
	if principal.Username != claims.Username() {
		return authOutcome{state: authStateInvalidToken, err: ErrTokenMalformed}
	}
	return authOutcome{state: authStateAuthenticated, principal: principal}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerScheme):])
	if token == "" {
		return "", false
	}
	return token, true
}

// CurrentPrincipal returns the principal bound to the request, if any.
func CurrentPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	return PrincipalFromContext(c.UserContext())
}
