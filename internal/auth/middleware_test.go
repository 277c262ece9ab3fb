package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository/memory"
)

type filterFixture struct {
	users  *memory.UserRepository
	tokens *TokenManager
	filter *AuthMiddleware
	logs   *observer.ObservedLogs
}

func newFilterFixture(t *testing.T) *filterFixture {
	t.Helper()
	users := memory.NewUserRepository()
	seedUser(t, users, "c1", "pw2", domain.RoleJobSeeker)

	core, logs := observer.New(zapcore.DebugLevel)
	tokens := NewTokenManager(testSecret, 0)
	return &filterFixture{
		users:  users,
		tokens: tokens,
		filter: NewAuthMiddleware(tokens, NewIdentityResolver(users), zap.New(core)),
		logs:   logs,
	}
}

func (f *filterFixture) app() *fiber.App {
	app := fiber.New()
	app.Use(f.filter.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(p.Username + ":" + string(p.Role))
	})
	return app
}

func (f *filterFixture) do(t *testing.T, app *fiber.App, header string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "the filter never terminates a request")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestFilterBindsPrincipalForValidToken(t *testing.T) {
	f := newFilterFixture(t)
	token, _, err := f.tokens.Issue("c1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "c1:JOB_SEEKER", f.do(t, f.app(), "Bearer "+token))
}

func TestFilterLeavesRequestAnonymous(t *testing.T) {
	f := newFilterFixture(t)
	valid, _, err := f.tokens.Issue("c1", time.Now())
	require.NoError(t, err)
	expired, _, err := f.tokens.Issue("c1", time.Now().Add(-11*time.Hour))
	require.NoError(t, err)
	ghost, _, err := f.tokens.Issue("ghost", time.Now())
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Basic " + valid,
		"lowercase scheme": "bearer " + valid,
		"empty token":      "Bearer ",
		"garbage":          "Bearer not-a-token",
		"expired":          "Bearer " + expired,
		"unknown subject":  "Bearer " + ghost,
	}
	app := f.app()
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "anonymous", f.do(t, app, header))
		})
	}
}

func TestFilterLogsDowngradedFailures(t *testing.T) {
	f := newFilterFixture(t)
	f.do(t, f.app(), "Bearer not-a-token")

	entries := f.logs.FilterMessage("request proceeds unauthenticated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "invalid_token", entries[0].ContextMap()["state"])
}

func TestFilterDoesNotOverwriteBoundPrincipal(t *testing.T) {
	f := newFilterFixture(t)
	token, _, err := f.tokens.Issue("c1", time.Now())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(WithPrincipal(c.UserContext(), domain.Principal{Username: "first", Role: domain.RoleRecruiter}))
		return c.Next()
	})
	app.Use(f.filter.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p, _ := CurrentPrincipal(c)
		return c.SendString(p.Username)
	})

	assert.Equal(t, "first", f.do(t, app, "Bearer "+token))
}

func TestAuthenticateStates(t *testing.T) {
	f := newFilterFixture(t)
	ctx := context.Background()
	valid, _, err := f.tokens.Issue("c1", time.Now())
	require.NoError(t, err)
	ghost, _, err := f.tokens.Issue("ghost", time.Now())
	require.NoError(t, err)

	assert.Equal(t, authStateNoToken, f.filter.authenticate(ctx, "").state)
	assert.Equal(t, authStateInvalidToken, f.filter.authenticate(ctx, "Token abc").state)
	assert.Equal(t, authStateInvalidToken, f.filter.authenticate(ctx, "Bearer "+valid+"x").state)
	assert.Equal(t, authStateUnknownSubject, f.filter.authenticate(ctx, "Bearer "+ghost).state)

	outcome := f.filter.authenticate(ctx, "Bearer "+valid)
	assert.Equal(t, authStateAuthenticated, outcome.state)
	assert.Equal(t, "c1", outcome.principal.Username)
}

func TestFilterReflectsRoleChangeWithoutReissue(t *testing.T) {
	f := newFilterFixture(t)
	token, _, err := f.tokens.Issue("c1", time.Now())
	require.NoError(t, err)
	app := f.app()

	assert.Equal(t, "c1:JOB_SEEKER", f.do(t, app, "Bearer "+token))

	user, err := f.users.GetByUsername(context.Background(), "c1")
	require.NoError(t, err)
	require.NoError(t, f.users.SetRole(user.ID, domain.RoleRecruiter))

	assert.Equal(t, "c1:RECRUITER", f.do(t, app, "Bearer "+token))
}
