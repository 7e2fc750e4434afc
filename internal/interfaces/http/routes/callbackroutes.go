package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/infrastructure/gateway/changelly"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/handlers"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// CallbackRouteConfig holds dependencies for payment provider callbacks.
type CallbackRouteConfig struct {
	CallbackHandler *handlers.CallbackHandler
	CryptoScheme    changelly.Scheme
	FiatScheme      changelly.Scheme
	Logger          logger.Interface
}

// SetupCallbackRoutes configures the provider callback routes. Each route is
// gated by the signature check for its scheme.
func SetupCallbackRoutes(engine *gin.Engine, cfg *CallbackRouteConfig) {
	callbacks := engine.Group("/api/v1/callback")
	{
		callbacks.POST("/changelly-crypto-api-callback",
			middleware.VerifyCallbackSignature(cfg.CryptoScheme, cfg.Logger),
			cfg.CallbackHandler.HandleCryptoCallback)

		callbacks.POST("/changelly-fiat-api-callback",
			middleware.VerifyCallbackSignature(cfg.FiatScheme, cfg.Logger),
			cfg.CallbackHandler.HandleFiatCallback)
	}
}
