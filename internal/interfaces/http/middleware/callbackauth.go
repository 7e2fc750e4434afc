package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/infrastructure/gateway/changelly"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

const maxCallbackBody = 1 << 20

// VerifyCallbackSignature authenticates a provider callback against the
// scheme's signing keys before the handler binds the body. The body is
// restored on the request so binding still works downstream.
func VerifyCallbackSignature(scheme changelly.Scheme, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "failed to read callback body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if err := scheme.VerifyCallback(c.Request.Header, body); err != nil {
			log.Warnw("callback signature rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
