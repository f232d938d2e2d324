package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	catalogUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/catalog"
	messagingUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/messaging"
	orderUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/order"
	referralUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/referral"
	settingsUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/settings"
	userUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/user"
	walletUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/wallet"

	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/handler"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/routes"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/auth"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/database"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/database/migration"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/metrics"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/provider"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/repository"
	timeProvider "github.com/boostlab/smm-panel/internal/infrastructure/adapter/time"
	"github.com/boostlab/smm-panel/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Database
	dbConfig := database.DefaultConfig()
	dbConfig.Host = cfg.Database.Host
	dbConfig.Port = cfg.Database.Port
	dbConfig.Username = cfg.Database.Username
	dbConfig.Password = cfg.Database.Password
	dbConfig.Database = cfg.Database.Database
	dbConfig.SSLMode = cfg.Database.SSLMode
	dbConfig.MaxOpenConns = cfg.Database.MaxOpenConns
	dbConfig.MaxIdleConns = cfg.Database.MaxIdleConns
	dbConfig.ConnMaxLifetime = cfg.Database.ConnMaxLifetime
	dbConfig.ConnMaxIdleTime = cfg.Database.ConnMaxIdleTime
	dbConfig.QueryTimeout = cfg.Database.QueryTimeout
	dbConfig.RetryAttempts = cfg.Database.RetryAttempts
	dbConfig.RetryDelay = cfg.Database.RetryDelay
	dbConfig.LogLevel = cfg.Logger.Level

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories
	db := dbManager.DB()
	userRepo := repository.NewUserRepository(db, tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(db, tp, appLogger)
	orderRepo := repository.NewOrderRepository(db, tp, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	serviceRepo := repository.NewServiceRepository(db, appLogger)
	providerRepo := repository.NewProviderRepository(db, appLogger)
	referralRepo := repository.NewReferralRepository(db, appLogger)
	tierRepo := repository.NewCommissionTierRepository(db, tp, appLogger)
	messageRepo := repository.NewMessageRepository(db, appLogger)
	ticketRepo := repository.NewTicketRepository(db, appLogger)
	paymentRepo := repository.NewPaymentMethodRepository(db, appLogger)
	contactRepo := repository.NewSupportContactRepository(db, appLogger)
	noticeRepo := repository.NewAdminNoticeRepository(db, appLogger)

	uow := database.NewUnitOfWork(db, appLogger, tp)

	// Default commission tiers only land in an empty table
	tierSeeds := make([]entity.CommissionTier, 0, len(cfg.Referral.TierSeeds))
	for _, seed := range cfg.Referral.TierSeeds {
		tierSeeds = append(tierSeeds, entity.CommissionTier{
			Threshold:  seed.Threshold,
			Commission: seed.Commission,
		})
	}
	if err := migration.SeedCommissionTiers(context.Background(), tierRepo, tierSeeds); err != nil {
		appLogger.Error("Failed to seed commission tiers", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Token store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	tokenStore := auth.NewRedisTokenStore(redisClient, appLogger)
	tokenManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	providerClient := provider.NewHTTPClient(cfg.Provider.RequestTimeout, appLogger)
	appMetrics := metrics.New()

	// Use cases
	userService := userUseCase.NewUseCase(
		userRepo, referralRepo, hasher, tokenManager, tokenStore,
		cfg.Auth.TokenTTL, tp, appLogger,
	)
	commissionEngine := referralUseCase.NewEngine(uow, tierRepo, referralRepo, tp, appLogger, appMetrics)
	walletService := walletUseCase.NewUseCase(uow, transactionRepo, userRepo, commissionEngine, tp, appLogger, appMetrics)
	dispatcher := orderUseCase.NewDispatcher(
		orderRepo, serviceRepo, providerRepo, providerClient, tp, appLogger, appMetrics,
		cfg.Dispatcher.QueueSize, cfg.Dispatcher.Workers,
	)
	orderService := orderUseCase.NewService(uow, serviceRepo, orderRepo, dispatcher, tp, appLogger, appMetrics)
	catalogService := catalogUseCase.NewUseCase(
		categoryRepo, serviceRepo, providerRepo, providerClient,
		cfg.Panel.DefaultMarkup, tp, appLogger,
	)
	messagingService := messagingUseCase.NewUseCase(messageRepo, ticketRepo, tp, appLogger)
	settingsService := settingsUseCase.NewUseCase(paymentRepo, contactRepo, noticeRepo, tp)

	// Status poller on a cron schedule; overlapping runs are skipped
	poller := orderUseCase.NewPoller(
		orderRepo, serviceRepo, providerRepo, providerClient, tp, appLogger, appMetrics,
		cfg.Poller.BatchSize,
	)
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(cfg.Poller.CronSpec, func() {
		poller.Run(context.Background())
	}); err != nil {
		appLogger.Error("Invalid poller cron spec", map[string]any{
			"spec":  cfg.Poller.CronSpec,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	scheduler.Start()

	// HTTP layer
	handlers := routes.Handlers{
		User:      handler.NewUserHandler(userService, appLogger),
		Catalog:   handler.NewCatalogHandler(catalogService, appLogger),
		Order:     handler.NewOrderHandler(orderService, appLogger),
		Wallet:    handler.NewWalletHandler(walletService, appLogger),
		Referral:  handler.NewReferralHandler(commissionEngine, userService, appLogger),
		Messaging: handler.NewMessagingHandler(messagingService, appLogger),
		Settings:  handler.NewSettingsHandler(settingsService, appLogger),
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, appMetrics)
	routes.SetupRoutes(router, handlers, tokenManager, tokenStore, appMetrics, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop taking new work before draining in-flight submissions
	scheduler.Stop()
	dispatcher.Shutdown()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
