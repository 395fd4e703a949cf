package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webstore/config"
	httpHandler "webstore/internal/adapter/http/handler"
	fileStorage "webstore/internal/adapter/storage/file"
	pgStorage "webstore/internal/adapter/storage/postgres"
	redisStorage "webstore/internal/adapter/storage/redis"
	"webstore/internal/core/ports"
	"webstore/internal/service"
	"webstore/pkg/logger"

	"github.com/spf13/afero"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting web store")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	catalogRepo := pgStorage.NewCatalogRepo(pool)
	walletRepo, err := fileStorage.NewWalletStore(afero.NewOsFs(), cfg.Wallet.AccountsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet store")
	}

	// Each randomized component gets its own source; the services guard
	// their source with a mutex, not each other's.
	newRng := func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Initialize core services
	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	amountGen := service.NewRandomAmountGenerator(newRng())

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, walletRepo, catalogRepo, hashSvc, tokenSvc, log)
	walletSvc := service.NewWalletService(walletRepo, userRepo, catalogRepo, amountGen, newRng(), log)
	catalogSvc := service.NewCatalogService(catalogRepo, amountGen, newRng(), log)
	storefrontSvc, err := service.NewStorefrontService(ctx, catalogRepo, newRng(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to select initial storefront")
	}

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		WalletSvc:      walletSvc,
		CatalogSvc:     catalogSvc,
		StorefrontSvc:  storefrontSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
