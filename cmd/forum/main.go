// Command forum runs the forum HTTP API.
//
// @title                      Forum API
// @version                    1.0
// @description                Accounts and posts of a discussion forum. Authenticate with HTTP Basic or with the bearer token returned by /account/login.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ait/forum/internal/api"
	"github.com/ait/forum/internal/api/handler"
	"github.com/ait/forum/internal/core/service"
	"github.com/ait/forum/internal/infrastructure/db/mongo"
	"github.com/ait/forum/internal/infrastructure/db/redis"
	"github.com/ait/forum/internal/infrastructure/security"
	"github.com/ait/forum/internal/pkg/config"
	"github.com/ait/forum/pkg/logger"
)

const shutdownGracePeriod = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("forum service stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting mongo")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	accountRepo := mongo.NewAccountRepository(db)
	postRepo := mongo.NewPostRepository(db)

	// --- Services ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	throttle := redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)

	accountService := service.NewAccountService(accountRepo, hasher, logger.Component("accounts"))
	authService := service.NewAuthService(accountRepo, hasher, throttle, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger.Component("auth"))
	postService := service.NewPostService(postRepo, logger.Component("posts"))

	if err := accountService.Bootstrap(ctx, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Accounts:  accountService,
		Auth:      authService,
		Posts:     postService,
		Readiness: handler.NewHealthDependenciesHandler(db, rdb),
	}, logger.Component("http"))

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("forum service starting")
		serverErrors <- e.Start(":" + cfg.Port)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful server shutdown failed")
			_ = e.Close()
		}
	}

	log.Info().Msg("forum service stopped")
	return nil
}
