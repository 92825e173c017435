package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/config"
	"github.com/iliyamo/task-manager/internal/handler"
	"github.com/iliyamo/task-manager/internal/logger"
	"github.com/iliyamo/task-manager/internal/middleware"
	"github.com/iliyamo/task-manager/internal/queue"
	"github.com/iliyamo/task-manager/internal/repository"
	"github.com/iliyamo/task-manager/internal/router"
	"github.com/iliyamo/task-manager/internal/service"
	"github.com/iliyamo/task-manager/internal/utils"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, lg *zap.Logger) error {
	if cfg.JWTSecret == config.DevJWTSecret {
		lg.Warn("JWT_SECRET not set, using the insecure development key")
	}

	store, err := repository.Open(repository.Config{
		Path:     cfg.DataFile,
		Seed:     cfg.SeedDemoData,
		SeedCost: cfg.BcryptCost,
		Logger:   lg,
	})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var events service.EventPublisher = queue.Discard{}
	if cfg.QueueEnabled {
		events = queue.NewPublisher(cfg.RabbitMQURL, lg)
	}

	tokens := utils.NewTokenCodec(cfg.JWTSecret, cfg.SessionTTL)
	auth := service.NewAuthService(store, tokens, cfg.BcryptCost, lg)
	tasks := service.NewTaskService(store, events, lg)

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		if rdb = config.NewRedisClient(cfg.Redis, lg); rdb != nil {
			defer func() { _ = rdb.Close() }()
		}
	}
	limiter := middleware.NewTokenBucket(cfg.RateLimit, rdb, lg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(lg))
	e.Use(echomw.BodyLimit("1M"))

	router.RegisterRoutes(e, store)
	router.RegisterAuth(e, handler.NewAuthHandler(auth, cfg.Production(), lg), auth, limiter)
	router.RegisterTasks(e, handler.NewTaskHandler(tasks, lg), auth, cfg.Production())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		lg.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("data_file", store.Path()))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
