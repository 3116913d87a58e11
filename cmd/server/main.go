package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ignaciodev/taskflow/internal/api"
	"github.com/ignaciodev/taskflow/internal/core/service"
	"github.com/ignaciodev/taskflow/internal/infrastructure/config"
	"github.com/ignaciodev/taskflow/internal/infrastructure/db/postgres"
	redisdb "github.com/ignaciodev/taskflow/internal/infrastructure/db/redis"
	"github.com/ignaciodev/taskflow/internal/realtime"
	"github.com/ignaciodev/taskflow/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer func() { _ = db.Close() }()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("database connected")

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// The event bridge is optional: without Redis the hub fans out to local
	// connections only, which is correct for a single instance.
	var bridge realtime.Bridge
	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var eb *redisdb.EventBridge
	if rdb != nil {
		eb = redisdb.NewEventBridge(rdb, log)
		bridge = eb
	}

	hub := realtime.NewHub(tokens, bridge, log)
	if eb != nil {
		go eb.Subscribe(ctx, hub.DeliverLocal)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("event bridge enabled")
	}

	e := api.NewRouter(db, rdb, tokens, hub, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
}
