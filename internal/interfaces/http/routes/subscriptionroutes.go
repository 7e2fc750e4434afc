package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	APIKeys             []string
	Logger              logger.Interface
}

// SetupSubscriptionRoutes configures the server-to-server subscription
// routes. Every route is gated by the partner API key.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/api/v1/subscription")
	subscriptions.Use(middleware.RequireAPIKey(cfg.APIKeys, cfg.Logger))
	{
		subscriptions.GET("/:telegramId", cfg.SubscriptionHandler.Get)
		subscriptions.POST("/submit", cfg.SubscriptionHandler.Submit)
		subscriptions.POST("/update", cfg.SubscriptionHandler.Update)
	}
}
