// Package startup prepares the application server
package startup

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/container"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/ai"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/cleanup"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/email"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/server"
	"github.com/tennisshoppro/shop-assistant-go/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until shutdown
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `
 _____                 _     ____  _                  ____
|_   _|__ _ __  _ __  (_)___/ ___|| |__   ___  _ __  |  _ \ _ __ ___
  | |/ _ \ '_ \| '_ \ | / __\___ \| '_ \ / _ \| '_ \ | |_) | '__/ _ \
  | |  __/ | | | | | || \__ \___) | | | | (_) | |_) ||  __/| | | (_) |
  |_|\___|_| |_|_| |_||_|___/____/|_| |_|\___/| .__/ |_|   |_|  \___/
                                              |_|
` + "\033[97m" + `
  assistente virtuale
` + "\033[0m")

	// Step 1: Initialize channeled logging
	log.Println("Initializing...")
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return err
	}
	defer logger.Close()

	// Step 2: Load the product catalog
	logger.Startup().Info("Loading product catalog", "path", config.ProductInfoPath)
	productInfo := catalog.Load(config.ProductInfoPath, logger)

	// Step 3: Create the session store
	logger.Startup().Info("Creating session store", "timeout", config.SessionTimeout)
	sessionStore := stores.NewSessionStore(config.SessionTimeout, logger)

	// Step 4: Initialize the AI completer (degraded mode without a key)
	var completer ai.Completer
	openaiClient, err := ai.NewOpenAIClient(config.OpenAIAPIKey, ai.Options{
		Model:       config.OpenAIModel,
		MaxTokens:   config.OpenAIMaxTokens,
		Temperature: config.OpenAITemperature,
	}, logger)
	if err != nil {
		logger.Startup().Warn("AI completer unavailable, assistant runs degraded", "error", err.Error())
	} else {
		completer = openaiClient
		logger.Startup().Info("AI completer initialized", "model", config.OpenAIModel)
	}

	// Step 5: Initialize the email service (optional)
	emailService, err := email.NewService(config.ResendAPIKey, config.StoreMailFrom, config.StoreNotifyTo, logger)
	if err != nil {
		logger.Startup().Warn("Email service unavailable, notifications disabled", "error", err.Error())
		emailService = nil
	}

	// Step 6: Create performance tracking
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	// Step 7: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(productInfo, sessionStore, completer, emailService, logger, perfTracker)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 8: Start background session cleanup worker
	logger.Startup().Info("Starting background cleanup worker...")
	cleanupWorker := cleanup.NewWorker(sessionStore, cleanup.NewConfig(), logger)
	go cleanupWorker.Start(ctx)

	// Step 9: Start HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", port)

	// Step 10: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"aiConfigured", completer != nil,
		"emailConfigured", emailService != nil,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
