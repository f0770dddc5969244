package main

import (
	"context"
	"database/sql"
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

	"provider-market.backend/internal/config"
	"provider-market.backend/internal/infrastructure/jobs"
	"provider-market.backend/internal/infrastructure/repositories"
	"provider-market.backend/internal/infrastructure/transport"
	"provider-market.backend/internal/interfaces/http/handlers"
	"provider-market.backend/internal/interfaces/http/middleware"
	"provider-market.backend/internal/usecases"
	"provider-market.backend/pkg/logger"
	"provider-market.backend/pkg/redis"
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
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	businessRepo := repositories.NewBusinessRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	templateRepo := repositories.NewNotificationTemplateRepository(db)
	preferenceRepo := repositories.NewNotificationPreferenceRepository(db)
	notificationLogRepo := repositories.NewNotificationLogRepository(sqlDB)

	// Initialize notification transports
	emailTransport, err := transport.NewSESEmailTransport(context.Background(), cfg.AWS.Region, cfg.AWS.FromEmail)
	if err != nil {
		return fmt.Errorf("failed to initialize email transport: %w", err)
	}
	smsTransport, err := transport.NewSNSSMSTransport(context.Background(), cfg.AWS.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize sms transport: %w", err)
	}

	// Initialize usecases
	verificationUsecase := usecases.NewVerificationUsecase(businessRepo, documentRepo)
	notificationUsecase := usecases.NewNotificationUsecase(userRepo, businessRepo, templateRepo, preferenceRepo, notificationLogRepo, emailTransport, smsTransport)
	approvalUsecase := usecases.NewApprovalUsecase(verificationUsecase, notificationUsecase, businessRepo, documentRepo, userRepo)

	// Initialize handlers
	businessHandler := handlers.NewBusinessHandler(approvalUsecase, verificationUsecase)
	documentHandler := handlers.NewDocumentHandler(approvalUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderJob := jobs.NewReviewReminderJob(businessRepo, cfg.Review.ReminderInterval, cfg.Review.StaleAfterDays)
	go reminderJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		businessHandler:     businessHandler,
		documentHandler:     documentHandler,
		notificationHandler: notificationHandler,
	})

	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reminderJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Provider Market Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
