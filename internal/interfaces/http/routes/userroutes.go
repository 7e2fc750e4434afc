package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/api/v1/users")
	{
		users.POST("/authenticate", cfg.UserHandler.Authenticate)
		users.POST("/verify-token", cfg.UserHandler.VerifyToken)

		usersProtected := users.Group("")
		usersProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			usersProtected.PATCH("/register-ton-address", cfg.UserHandler.RegisterTonAddress)
			usersProtected.GET("/reward-history", cfg.UserHandler.GetRewardHistory)
		}
	}
}
