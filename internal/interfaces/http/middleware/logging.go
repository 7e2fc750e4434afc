package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

// RequestLogger logs every request with a severity derived from the response
// status. Health checks are skipped to keep the log stream readable.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Request.URL.Path == "/health" {
			return
		}

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if query := c.Request.URL.RawQuery; query != "" {
			args = append(args, "query", query)
		}

		// Populated by the auth middleware once the bearer token is verified.
		if telegramID, exists := c.Get("telegram_id"); exists {
			args = append(args, "telegram_id", telegramID)
		}

		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Infow("request completed", args...)
		}
	}
}
