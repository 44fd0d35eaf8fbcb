package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"mistriconnect/config"
	"mistriconnect/cron"
	"mistriconnect/database"
	customerRepoPkg "mistriconnect/database/repository/customer"
	earningsRepoPkg "mistriconnect/database/repository/earnings"
	jobRepoPkg "mistriconnect/database/repository/job"
	providerRepoPkg "mistriconnect/database/repository/provider"
	schedulerRepoPkg "mistriconnect/database/repository/scheduler"
	"mistriconnect/handlers"
	"mistriconnect/middleware"
	"mistriconnect/routes"
	"mistriconnect/services/booking"
	customerSvc "mistriconnect/services/customer"
	"mistriconnect/services/earnings"
	"mistriconnect/services/notification"
	providerSvc "mistriconnect/services/provider"
	"mistriconnect/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	custRepo := customerRepoPkg.NewMongoCustomerRepo()
	jRepo := jobRepoPkg.NewMongoJobRepo()
	earnRepo := earningsRepoPkg.NewMongoEarningsRepo()
	schedRepo := schedulerRepoPkg.NewMongoSchedulerRepo(earnRepo)

	// Notification queue.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	notifier := notification.NewQueueNotificationService(queueClient)
	cron.InitNotificationWorker()

	// Services.
	bookingService := &booking.DefaultBookingService{
		Jobs:      jRepo,
		Providers: provRepo,
		Scheduler: schedRepo,
		Notifier:  notifier,
	}
	earningsService := &earnings.DefaultEarningsService{Repo: earnRepo}
	providerService := &providerSvc.DefaultProviderService{Repo: provRepo}
	customerService := &customerSvc.DefaultCustomerService{Repo: custRepo}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		CustomerRepo: custRepo,
		ProviderRepo: provRepo,
		Customer:     handlers.NewCustomerHandler(customerService),
		Provider:     handlers.NewProviderHandler(providerService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Earnings:     handlers.NewEarningsHandler(earningsService),
	}
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

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
