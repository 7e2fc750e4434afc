package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/domain/user"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
)

// SaleRouteConfig holds dependencies for sale routes.
type SaleRouteConfig struct {
	SaleHandler    *handlers.SaleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupSaleRoutes configures sale routes.
func SetupSaleRoutes(engine *gin.Engine, cfg *SaleRouteConfig) {
	sales := engine.Group("/api/v1/sale")
	{
		sales.GET("/get-active-sale", cfg.SaleHandler.GetActiveSale)
		sales.GET("/get-current-price", cfg.SaleHandler.GetCurrentPrice)

		buyers := sales.Group("")
		buyers.Use(cfg.AuthMiddleware.RequireAuth())
		{
			buyers.POST("/generate-ton-payment-code", cfg.SaleHandler.GenerateTonPaymentCode)
			buyers.POST("/purchase-with-crypto", cfg.SaleHandler.PurchaseWithCrypto)
			buyers.PATCH("/:saleName/receiving-address", cfg.SaleHandler.EditReceivingAddress)
		}

		admins := sales.Group("")
		admins.Use(cfg.AuthMiddleware.RequireAuth(user.RoleAdmin))
		{
			admins.POST("/start-new", cfg.SaleHandler.StartNew)
			admins.POST("/pause", cfg.SaleHandler.Pause)
			admins.POST("/resume", cfg.SaleHandler.Resume)
			admins.PATCH("/:saleName/receiving-address/toggle", cfg.SaleHandler.ToggleEditReceivingAddress)
		}
	}
}
