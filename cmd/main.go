// Package main wires the HTTP server for the team invitation service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"senior-hub-api/config"
	"senior-hub-api/internal/notify"
	"senior-hub-api/internal/ratelimit"
	"senior-hub-api/internal/repository"
	"senior-hub-api/internal/token"
	"senior-hub-api/internal/transport/http/middleware"
	"senior-hub-api/internal/transport/http/server/handlers-fiber"
	"senior-hub-api/internal/usecase"
	"senior-hub-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	repo, err := repository.New(ctx, cfg.Repository.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	limiter, closeLimiter := newLimiter(ctx, log, cfg)
	defer closeLimiter()

	uc := usecase.New(log, usecase.Deps{
		Repo:     repo,
		Tokens:   token.NewRandom(cfg.Invitation.TokenBytes),
		Notifier: notify.New(log, cfg.SMTP),
		Limiter:  limiter,
	}, cfg.Invitation, cfg.HTTP.RequestTimeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log, "/healthz"))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	handlers_fiber.RegisterHandlers(serv, h)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}

// newLimiter returns the Redis throttle when Redis is configured.
func newLimiter(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) (ratelimit.Limiter, func()) {
	if !cfg.Redis.Enabled() {
		return ratelimit.Noop{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable, invitation throttle fails open", "error", err, "addr", cfg.Redis.Addr)
	}
	limiter := ratelimit.NewRedis(rdb, log, cfg.Invitation.RateLimit, cfg.Invitation.RateWindow)
	return limiter, func() { _ = rdb.Close() }
}
