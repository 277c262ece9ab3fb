package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/spec-kit/hiring-service/internal/api/http/handlers"
	"github.com/spec-kit/hiring-service/internal/auth"
	"github.com/spec-kit/hiring-service/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Posts          *handlers.PostsHandler
	Candidates     *handlers.CandidateHandler
	AuthMiddleware *auth.AuthMiddleware
	Policy         *auth.Policy
	CORS           config.CORSConfig
}

// NewApp builds a fiber app whose routing agrees with the path matching of
// the authorization policy.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:       appName,
		CaseSensitive: true,
		StrictRouting: true,
	})
}

// RegisterRoutes wires HTTP routes. Every route sits behind the
// authentication filter followed by the authorization policy. CORS runs
// first and answers preflight requests itself, so they never meet the policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(corsMiddleware(cfg.CORS))
	app.Use(cfg.AuthMiddleware.Handle)
	app.Use(cfg.Policy.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	posts := app.Group("/posts")
	posts.Get("/all", cfg.Posts.All)
	posts.Get("/search/:text", cfg.Posts.Search)
	posts.Post("/add", cfg.Posts.Add)
	posts.Post("/apply/:jobId", cfg.Posts.Apply)

	candidate := app.Group("/candidate")
	candidate.Post("/profile", cfg.Candidates.SaveProfile)
	candidate.Get("/profile/:userId", cfg.Candidates.GetProfile)
}

func corsMiddleware(cfg config.CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
		AllowHeaders: cfg.AllowHeaders,
		MaxAge:       cfg.MaxAgeSec,
	})
}
