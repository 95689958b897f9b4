// File: careflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careflow/config"
	"careflow/cron"
	"careflow/database"
	bookingRepo "careflow/database/repository/booking"
	"careflow/handlers"
	"careflow/middleware"
	"careflow/routes"
	"careflow/services/chat"
	"careflow/services/inference"
	"careflow/services/notification"
	"careflow/services/retrieval"
	"careflow/services/tasks"
	"careflow/services/workflow"
	"careflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()

	// collaborators. A missing retrieval URL leaves the engine in fallback mode.
	var retriever retrieval.Searcher
	if config.AppConfig.RetrievalURL != "" {
		retriever = retrieval.NewHTTPSearcher(config.AppConfig.RetrievalURL)
	}

	var generator inference.Generator
	if config.AppConfig.AIBackend == "gemini" && config.AppConfig.GeminiAPIKey != "" {
		generator = inference.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	} else {
		generator = inference.NewLocalClient(config.AppConfig.ModelAPIURL, config.AppConfig.DeviceSpeedClass)
	}

	notifier := tasks.NewAsynqNotifier()
	defer notifier.Close()

	// services.
	engine := workflow.NewDefaultEngine(retriever, bookings, notifier)

	sessionStore := chat.NewRedisSessionStore(utils.GetSessionCacheClient(), 0)
	chatService := chat.NewDefaultChatService(engine, sessionStore, generator)

	chatHandler := handlers.NewChatHandler(chatService)
	bookingHandler := handlers.NewBookingHandler(engine, bookings)
	workflowHandler := handlers.NewWorkflowHandler(engine)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Chat endpoints.
		ChatHandler:         chatHandler.HandleChat,
		ClearSessionHandler: chatHandler.ClearSession,

		// Booking endpoints.
		ConfirmBookingHandler:      bookingHandler.ConfirmBooking,
		GetBookingHandler:          bookingHandler.GetBooking,
		ListSessionBookingsHandler: bookingHandler.ListSessionBookings,

		// Workflow stage endpoints.
		TriageHandler:         workflowHandler.TriageHandler,
		MatchProvidersHandler: workflowHandler.MatchProvidersHandler,
		ScheduleHandler:       workflowHandler.ScheduleHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and health monitoring.
	cron.InitNotifyWorker(&notification.DefaultNotificationService{})
	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

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
