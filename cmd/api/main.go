package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/kirinho/cloud-file/internal/api/http"
	"github.com/kirinho/cloud-file/internal/api/http/handlers"
	"github.com/kirinho/cloud-file/internal/auth"
	"github.com/kirinho/cloud-file/internal/config"
	"github.com/kirinho/cloud-file/internal/events"
	"github.com/kirinho/cloud-file/internal/observability"
	"github.com/kirinho/cloud-file/internal/persistence"
	"github.com/kirinho/cloud-file/internal/repository"
	"github.com/kirinho/cloud-file/internal/service"
)

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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	userRepo := repository.NewUserRepository(pg.PoolHandle())

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	verifier := auth.NewCredentialVerifier(userRepo)
	authenticator := auth.NewAuthenticator(verifier, tokens)
	guard := auth.NewGuard(tokens, userRepo)

	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, logger)

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger, metrics)
	auditService.RegisterHandlers()

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.App.Env == "production"})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:         handlers.NewAuthHandler(authenticator, userService, dispatcher),
		Users:        handlers.NewUsersHandler(userService, dispatcher),
		Admin:        handlers.NewAdminHandler(userService, dispatcher),
		Guard:        guard,
		LoginLimiter: httptransport.LoginRateLimiter(redis.Client, cfg.Auth.LoginAttemptsPerMin, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
