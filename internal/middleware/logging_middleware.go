// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"escp-service/internal/utils"
)

// LoggingMiddleware logs every request once it has been served. Requests that
// match no route are logged under their raw path.
func LoggingMiddleware(logger *utils.ServiceLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logger.LogAPIRequest(utils.APIRequest{
			Method:     c.Request.Method,
			Path:       path,
			RequestID:  c.GetString(utils.RequestIDKey),
			UserAgent:  c.Request.UserAgent(),
			ClientIP:   c.ClientIP(),
			StatusCode: c.Writer.Status(),
			Bytes:      c.Writer.Size(),
			Duration:   time.Since(startTime),
		})
	}
}
