package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/fxledger/internal/adapter/http"
	"github.com/iho/fxledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/fxledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fxledger/internal/adapter/repository/redis"
	"github.com/iho/fxledger/internal/adapter/rates"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/config"
	"github.com/iho/fxledger/internal/infrastructure/logger"
	"github.com/iho/fxledger/internal/infrastructure/postgres"
	"github.com/iho/fxledger/internal/infrastructure/redis"
	"github.com/iho/fxledger/internal/usecase"
)

const migrationsPath = "migrations"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	currencies, err := domain.NewCurrencySet(cfg.SupportedCurrencies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid supported currencies")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Rate providers
	fixedRates := rates.NewFixedRateTable(rates.DefaultFixedRates())
	remoteRates := rates.NewRemoteRateClient(rates.RemoteConfig{
		Endpoint: cfg.RateAPIEndpoint,
		Timeout:  cfg.RateAPITimeout,
	}, log)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	balanceUC := usecase.NewBalanceUseCase(txManager, balanceRepo, transactionRepo, idGen, currencies, log)
	exchangeUC := usecase.NewExchangeUseCase(txManager, balanceRepo, transactionRepo, idGen, fixedRates, remoteRates, retrier, currencies, log)

	if cfg.SeedOnStart {
		seedUC := usecase.NewSeedUseCase(accountRepo, accountUC, balanceUC,
			usecase.NewRandomBalanceGenerator(currencies), log)
		if err := seedUC.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to load initial data")
		}
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC, accountUC)
	exchangeHandler := handler.NewExchangeHandler(exchangeUC, accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		BalanceHandler:   balanceHandler,
		ExchangeHandler:  exchangeHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Logger:           log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
