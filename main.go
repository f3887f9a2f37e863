// File: heysheets/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heysheets/config"
	calendarRepo "heysheets/database/repository/calendar"
	sheetRepo "heysheets/database/repository/sheet"
	storeRepo "heysheets/database/repository/store"
	"heysheets/handlers"
	"heysheets/middleware"
	"heysheets/routes"
	"heysheets/services/availability"
	"heysheets/services/booking"
	"heysheets/services/catalog"
	"heysheets/services/chat"
	ai "heysheets/services/intelligence"
	"heysheets/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetStoreCacheClient(),
	})

	ctx := context.Background()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	stores := storeRepo.NewRedisStoreRepo(utils.GetStoreCacheClient())
	sheets, err := sheetRepo.NewGoogleSheetRepo(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize sheets client: %v", err)
	}
	calendars, err := calendarRepo.NewGoogleCalendarRepo(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar client: %v", err)
	}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Sheets:   sheets,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.CatalogCacheTTLMin) * time.Minute,
	}

	availabilityEngine := &availability.DefaultAvailabilityEngine{
		Catalog:  catalogService,
		Calendar: calendars,
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Availability: availabilityEngine,
		Calendar:     calendars,
		Locks:        booking.NewRedisSlotLocker(utils.GetCacheClient()),
		InviteMode:   config.AppConfig.CalendarInviteMode,
	}

	llm, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	chatService := &chat.DefaultChatService{
		Stores:       stores,
		Catalog:      catalogService,
		Availability: availabilityEngine,
		Booking:      bookingEngine,
		Classifier:   &ai.DefaultClassifier{LLM: llm},
		Synthesizer:  &ai.DefaultSynthesizer{LLM: llm},
		Debug:        chat.NewRedisDebugSink(utils.GetCacheClient()),
	}

	chatHandler := handlers.NewChatHandler(chatService, stores, catalogService)

	// Register routes.
	routes.RegisterRoutes(router, chatHandler)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
