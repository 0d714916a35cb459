package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artist-membership.backend/internal/config"
	domainrepos "artist-membership.backend/internal/domain/repositories"
	"artist-membership.backend/internal/infrastructure/gateways"
	"artist-membership.backend/internal/infrastructure/jobs"
	"artist-membership.backend/internal/infrastructure/models"
	"artist-membership.backend/internal/infrastructure/repositories"
	"artist-membership.backend/internal/interfaces/http/handlers"
	"artist-membership.backend/internal/interfaces/http/middleware"
	"artist-membership.backend/internal/usecases"
	"artist-membership.backend/pkg/logger"
	"artist-membership.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
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
	logger.Info(context.Background(), "logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis backs the idempotency guard only; the server still runs without it
	redisAvailable := true
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		redisAvailable = false
		logger.Warn(context.Background(), "redis unavailable, idempotency guard disabled", zap.Error(err))
	}

	memberRepo, err := buildMemberRepository(cfg)
	if err != nil {
		return err
	}

	gateway := gateways.NewRazorpayGateway(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
	)

	pricing := usecases.NewPricingService(cfg.Membership)
	memberUsecase := usecases.NewMemberUsecase(memberRepo, gateway, pricing, cfg.Razorpay, cfg.Membership)
	paymentUsecase := usecases.NewPaymentUsecase(memberRepo, gateway)

	memberHandler := handlers.NewMemberHandler(memberUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	webhookHandler := handlers.NewWebhookHandler(paymentUsecase)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := jobs.NewPendingPaymentWatcher(memberRepo, cfg.Membership.PendingMaxAge)
	go watcher.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		memberHandler:      memberHandler,
		paymentHandler:     paymentHandler,
		webhookHandler:     webhookHandler,
		idempotencyEnabled: redisAvailable,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down server")
		watcher.Stop()
		cancel()
	}()

	logger.Info(ctx, "membership backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Bool("gateway_enabled", cfg.Razorpay.Enabled),
		zap.String("store_driver", cfg.Database.Driver),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildMemberRepository selects the store backend: a durable gorm/postgres
// repository or the process-lifetime in-memory variant.
func buildMemberRepository(cfg *config.Config) (domainrepos.MemberRepository, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn(context.Background(), "using in-memory member store, data is not durable")
		return repositories.NewMemoryMemberRepository(cfg.Membership.CardPrefix), nil
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Member{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return repositories.NewMemberRepository(db, cfg.Membership.CardPrefix), nil
}
