package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "borrowhood-backend/internal/api/http"
	"borrowhood-backend/internal/config"
	"borrowhood-backend/internal/jobs"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository/postgres"
	"borrowhood-backend/internal/scheduler"
	"borrowhood-backend/internal/security"
	"borrowhood-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Borrowhood Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Payment configuration", "provider", cfg.Payment.Provider)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Payment Gateway
	gateway, err := service.NewPaymentGateway(cfg.Payment)
	if err != nil {
		logger.Error("Failed to initialize payment gateway", "error", err)
		log.Fatalf("Failed to initialize payment gateway: %v", err)
	}
	logger.Info("Payment gateway ready", "provider", gateway.Name())

	// Initialize Services
	otpSvc := service.NewOTPService(
		service.NewMemoryOTPStore(),
		service.NewLogSender(),
		store.OtpRepository,
		cfg.OTP.ExpiryMinutes,
	)
	authSvc := service.NewAuthService(store.UserRepository, otpSvc, tokenManager, cfg.OTP.DemoMode)
	userSvc := service.NewUserService(store.UserRepository)
	itemSvc := service.NewItemService(store.ItemRepository, store.UserRepository)
	trustSvc := service.NewTrustScoreService(
		store.TrustScoreRepository,
		store.BorrowRepository,
		store.ReviewRepository,
		store.UserRepository,
		cfg.TrustScore.HistoryKeep,
	)
	borrowSvc := service.NewBorrowService(
		store.BorrowRepository,
		store.ItemRepository,
		store.UserRepository,
		store.NotificationRepository,
		trustSvc,
		otpSvc,
		cfg.Penalty,
	)
	reviewSvc := service.NewReviewService(
		store.ReviewRepository,
		store.BorrowRepository,
		store.ItemRepository,
		trustSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BorrowRepository,
		store.NotificationRepository,
		gateway,
		cfg.Payment.Currency,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP API
	handler := httpapi.NewHandler(authSvc, userSvc, itemSvc, borrowSvc, reviewSvc, trustSvc, paymentSvc, noteSvc)
	router := httpapi.NewRouter(handler, tokenManager)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		TrustScore: trustSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
