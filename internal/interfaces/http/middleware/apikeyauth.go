package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

// RequireAPIKey gates server-to-server routes behind the X-Api-Auth-Key
// header. Any of the configured keys is accepted.
func RequireAPIKey(keys []string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Api-Auth-Key")
		if provided == "" {
			utils.ErrorResponseWithError(c,
				apperrors.NewBadRequestError("API key not provided", "No x-api-auth-key header"))
			c.Abort()
			return
		}

		for _, key := range keys {
			if provided == key {
				c.Next()
				return
			}
		}

		log.Warnw("api key rejected",
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP())
		utils.ErrorResponseWithError(c,
			apperrors.NewBadRequestError("Invalid API key", "API key does not match"))
		c.Abort()
	}
}
