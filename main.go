// File: reservo/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reservo/config"
	"reservo/cron"
	"reservo/database"
	documentRepo "reservo/database/repository/document"
	sessionRepo "reservo/database/repository/session"
	"reservo/handlers"
	"reservo/middleware"
	"reservo/routes"
	"reservo/services/booking"
	"reservo/services/conversation"
	"reservo/services/notification"
	"reservo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	// repositories.
	var store documentRepo.DocumentStore
	switch config.AppConfig.StoreBackend {
	case "mongo":
		database.InitDB()
		store = documentRepo.NewMongoDocumentStore(database.MongoClient, config.AppConfig.DatabaseName)
	default:
		fileStore, err := documentRepo.NewFileDocumentStore(config.AppConfig.DataFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open data file: %v", err)
		}
		store = fileStore
	}
	if _, err := store.Load(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: failed to load agent document: %v", err)
	}

	var sessions sessionRepo.SessionRepository
	switch config.AppConfig.SessionBackend {
	case "redis":
		sessions = sessionRepo.NewRedisSessionRepo(utils.GetSessionCacheClient(), config.AppConfig.SessionTTL)
	default:
		sessions = sessionRepo.NewMemorySessionRepo()
	}

	// notifications and reminders.
	var (
		notificationService notification.NotificationService = notification.NewLogNotificationService(logger)
		queueClient         *asynq.Client
		reminderWorker      *asynq.Server
	)
	if config.AppConfig.RemindersEnabled {
		queueClient = asynq.NewClient(cron.RedisQueueOpt())
		notificationService = notification.NewReminderNotificationService(queueClient, config.AppConfig.ReminderLead, logger)
		worker, err := cron.InitReminderWorker(logger)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		reminderWorker = worker
	}

	// services.
	reservationService := booking.NewReservationService(store, notificationService, logger)
	chatController := conversation.NewController(reservationService, sessions, logger)

	healthMonitor, err := utils.StartHealthMonitor(utils.SessionCacheClient, database.MongoClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start health monitor: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewReservationHandler(reservationService),
		handlers.NewChatHandler(chatController),
		handlers.NewAdminHandler(reservationService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("store", config.AppConfig.StoreBackend),
		zap.String("sessions", config.AppConfig.SessionBackend),
		zap.Bool("reminders", config.AppConfig.RemindersEnabled),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	<-healthMonitor.Stop().Done()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if utils.SessionCacheClient != nil {
		_ = utils.SessionCacheClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
