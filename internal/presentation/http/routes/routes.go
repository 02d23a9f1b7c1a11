// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/container"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/handlers"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/middleware"
	"github.com/tennisshoppro/shop-assistant-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CanonicalHostMiddleware(config.CanonicalHost))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SessionMiddleware())

	// Serve the storefront widget assets
	r.Static("/shop", config.StaticDir)
	r.StaticFile("/favicon.ico", config.StaticDir+"/favicon.ico")

	// Initialize handlers
	chatHandlers := handlers.NewChatHandlers(container.ChatService, container.Logger, container.PerfTracker)
	sessionHandlers := handlers.NewSessionHandlers(container.SessionStore, container.LimitService, container.Logger)
	catalogHandlers := handlers.NewCatalogHandlers(container.ProductInfo, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(
		container.SessionStore,
		container.LimitService,
		container.PerfTracker,
		container.Completer != nil,
		container.EmailService != nil,
	)

	api := r.Group("/api")
	{
		api.POST("/chat", chatHandlers.PostChat)
		api.GET("/session-info", sessionHandlers.GetSessionInfo)
		api.POST("/reset-session", sessionHandlers.PostResetSession)
		api.GET("/product-info", catalogHandlers.GetProductInfo)
		api.GET("/health", healthHandlers.GetHealth)
		api.GET("/performance", healthHandlers.GetPerformanceSummary)
	}

	return r
}
