package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hiring-service/internal/api/http"
	"github.com/spec-kit/hiring-service/internal/api/http/handlers"
	"github.com/spec-kit/hiring-service/internal/auth"
	"github.com/spec-kit/hiring-service/internal/config"
	"github.com/spec-kit/hiring-service/internal/events"
	"github.com/spec-kit/hiring-service/internal/mail"
	"github.com/spec-kit/hiring-service/internal/observability"
	"github.com/spec-kit/hiring-service/internal/persistence"
	"github.com/spec-kit/hiring-service/internal/repository"
	"github.com/spec-kit/hiring-service/internal/repository/memory"
	"github.com/spec-kit/hiring-service/internal/service"
	"github.com/spec-kit/hiring-service/internal/worker"
)

type repositories struct {
	users    repository.UserRepository
	postings repository.JobPostingRepository
	profiles repository.CandidateProfileRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	verifier, err := auth.NewCredentialVerifier(repos.users, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init credential verifier", zap.Error(err))
	}
	policy, err := auth.NewPolicy(auth.DefaultRules())
	if err != nil {
		logger.Fatal("invalid authorization rules", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(tokens, auth.NewIdentityResolver(repos.users), logger)

	dispatcher := events.NewInMemoryDispatcher(func(event events.Event, err error) {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("job_id", event.JobID),
			zap.Error(err))
	})

	var delivery mail.Mailer = mail.NewLogMailer(logger)
	if cfg.Mail.Enabled() {
		delivery = mail.NewSMTPMailer(cfg.Mail)
	}

	var wg sync.WaitGroup
	notifier := delivery
	if redis.Enabled() {
		queue := mail.NewRedisQueue(redis.Client, cfg.Mail.QueueKey)
		notifier = queue
		w := worker.NewNotificationWorker(queue, delivery, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}
	service.NewNotificationService(dispatcher, notifier, logger).RegisterHandlers()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   repos.users,
		Verifier:   verifier,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	postService := service.NewPostService(service.PostDependencies{
		PostingRepo: repos.postings,
		ProfileRepo: repos.profiles,
		UserRepo:    repos.users,
		Dispatcher:  dispatcher,
	})
	candidateService := service.NewCandidateService(repos.profiles)

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Posts:          handlers.NewPostsHandler(postService),
		Candidates:     handlers.NewCandidateHandler(candidateService),
		AuthMiddleware: authMiddleware,
		Policy:         policy,
		CORS:           cfg.CORS,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	wg.Wait()
}

func newRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		return repositories{
			users:    memory.NewUserRepository(),
			postings: memory.NewJobPostingRepository(),
			profiles: memory.NewCandidateProfileRepository(),
		}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:    repository.NewUserRepository(pool),
		postings: repository.NewJobPostingRepository(pool),
		profiles: repository.NewCandidateProfileRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
