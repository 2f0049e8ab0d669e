package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pay-chain.backend/internal/config"
	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/internal/domain/repositories"
	"pay-chain.backend/internal/infrastructure/cache"
	"pay-chain.backend/internal/infrastructure/identity"
	"pay-chain.backend/internal/infrastructure/messaging"
	infraRepos "pay-chain.backend/internal/infrastructure/repositories"
	"pay-chain.backend/internal/interfaces/http/handlers"
	"pay-chain.backend/internal/interfaces/http/middleware"
	"pay-chain.backend/internal/usecases"
	"pay-chain.backend/pkg/jwt"
	"pay-chain.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	connectRedis = cache.NewClient
	connectBus   = messaging.NewBus
	runServer    = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB     = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	// Redis profile cache. The service stays up without it.
	var profileCache repositories.ProfileCache
	var redisClient *goredis.Client
	if redisClient, err = connectRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis not available, profile cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		profileCache = cache.NewRedisProfileCache(redisClient, cfg.Cache.ProfileTTL)
		logger.Info(context.Background(), "Redis profile cache initialized")
	}

	// Event bus. Falls back to a no-op bus so profile operations keep working
	// when the broker is down.
	var bus events.Publisher
	var sub events.Subscriber
	if eventBus, busErr := connectBus(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange); busErr != nil {
		logger.Warn(context.Background(), "RabbitMQ not available, events disabled", zap.Error(busErr))
		noop := messaging.NewNoopBus()
		bus, sub = noop, noop
	} else {
		defer eventBus.Close()
		bus, sub = eventBus, eventBus
		logger.Info(context.Background(), "Event bus initialized", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	// Identity service client
	tokenSigner := jwt.NewServiceTokenSigner(cfg.Identity.ServiceSecret, cfg.Identity.ServiceName, cfg.Identity.TokenExpiry)
	identityClient := identity.NewClient(cfg.Identity.BaseURL, tokenSigner, cfg.Identity.Timeout)

	// Repositories
	profileRepo := infraRepos.NewUserProfileRepository(db)
	appRepo := infraRepos.NewSellerApplicationRepository(db)
	uow := infraRepos.NewUnitOfWork(db)

	// Usecases
	profileUsecase := usecases.NewProfileUsecase(profileRepo, profileCache, bus, identityClient)
	sellerUsecase := usecases.NewSellerApplicationUsecase(appRepo, profileRepo, profileCache, bus, uow)
	adminUsecase := usecases.NewAdminUsecase(profileRepo, appRepo, profileCache, bus)

	// Event consumers
	if err := usecases.RegisterConsumers(sub, profileUsecase); err != nil {
		logger.Warn(context.Background(), "Failed to register event consumers", zap.Error(err))
	}

	// Avatar upload directory
	if err := os.MkdirAll(cfg.Upload.AvatarDir, 0o755); err != nil {
		return fmt.Errorf("failed to create avatar directory: %w", err)
	}

	// Handlers
	profileHandler := handlers.NewProfileHandler(profileUsecase, cfg.Upload.AvatarDir)
	sellerHandler := handlers.NewSellerHandler(sellerUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, sellerUsecase)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		profileHandler:     profileHandler,
		sellerHandler:      sellerHandler,
		adminHandler:       adminHandler,
		identityMiddleware: middleware.GatewayIdentityMiddleware(),
	})

	logger.Info(context.Background(), "Profile service starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
