package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/auth"
	"aqarshare/admin-portal/admin-portal-backend/internal/config"
	"aqarshare/admin-portal/admin-portal-backend/internal/database"
	"aqarshare/admin-portal/admin-portal-backend/internal/funding"
	"aqarshare/admin-portal/admin-portal-backend/internal/identity"
	"aqarshare/admin-portal/admin-portal-backend/internal/notifications"
	wshub "aqarshare/admin-portal/admin-portal-backend/internal/notifications/websocket"
	"aqarshare/admin-portal/admin-portal-backend/internal/properties"
	"aqarshare/admin-portal/admin-portal-backend/internal/receipts"
	"aqarshare/admin-portal/admin-portal-backend/internal/reports"
	"aqarshare/admin-portal/admin-portal-backend/internal/stats"
	"aqarshare/admin-portal/admin-portal-backend/internal/users"
	"aqarshare/admin-portal/admin-portal-backend/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&users.User{},
		&identity.Identification{},
		&properties.Category{},
		&properties.Property{},
		&funding.Funder{},
		&receipts.Receipt{},
		&notifications.Notification{},
	); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// The stats queries run on database/sql directly.
	sqlDB, err := sql.Open("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("failed to open stats connection", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx := context.Background()
	imageStore, err := storage.NewS3Client(ctx, storage.Options{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
	})
	if err != nil {
		logger.Fatal("failed to create storage client", zap.Error(err))
	}

	txRunner := database.NewGormTxRunner(db)

	hub := wshub.NewHub(logger)
	defer hub.Close()
	notificationRepo := notifications.NewRepository(db)
	notificationService := notifications.NewService(notificationRepo, hub, logger)

	userRepo := users.NewRepository(db)
	tokens := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService)

	identityRepo := identity.NewRepository(db)
	identityService := identity.NewService(identityRepo, userRepo, txRunner, notificationService, imageStore)
	identityHandler := identity.NewHandler(identityService)

	propertyRepo := properties.NewRepository(db)
	propertyService := properties.NewService(propertyRepo)
	propertyHandler := properties.NewHandler(propertyService)

	fundingRepo := funding.NewRepository(db)
	allocationService := funding.NewService(fundingRepo, propertyRepo, txRunner, notificationService, logger)
	fundingHandler := funding.NewHandler(allocationService)

	receiptRepo := receipts.NewRepository(db)
	receiptService := receipts.NewService(receiptRepo, allocationService, txRunner, notificationService, imageStore, logger)
	receiptHandler := receipts.NewHandler(receiptService)

	statsRepo := stats.NewRepository(sqlDB)
	statsHandler := stats.NewHandler(statsRepo)

	reportService := reports.NewService(fundingRepo, propertyRepo, userRepo)
	reportHandler := reports.NewHandler(reportService)

	notificationHandler := notifications.NewHandler(notificationService, hub)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api)

	admin := api.Group("", auth.Middleware(tokens), auth.RequireAdmin())
	authHandler.RegisterProtectedRoutes(admin)
	identityHandler.RegisterRoutes(admin)
	propertyHandler.RegisterRoutes(admin)
	fundingHandler.RegisterRoutes(admin)
	receiptHandler.RegisterRoutes(admin)
	statsHandler.RegisterRoutes(admin)
	reportHandler.RegisterRoutes(admin)
	notificationHandler.RegisterRoutes(admin)

	if cfg.Monitor.Enabled {
		monitor := funding.NewSubscriptionMonitor(allocationService, propertyRepo, notificationService, logger)
		if err := monitor.Start(cfg.Monitor.CronExpression); err != nil {
			logger.Fatal("failed to start subscription monitor", zap.Error(err))
		}
		defer monitor.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	return cfg.Build()
}
