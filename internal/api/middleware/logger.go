package middleware

import (
	"net/http"
	"time"

	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs every request with a level picked from its status
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			common.LogError("Server error", append(fields, zap.String("error_type", "server_error"))...)
		case status >= 400:
			common.LogWarn("Client error", append(fields, zap.String("error_type", "client_error"))...)
		default:
			common.LogInfo(common.MsgRequestCompleted, fields...)
		}
	}
}

// Recovery turns a handler panic into a 500 envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

// RequestContext copies the request id onto the request context and flags
// development mode for error responses.
func RequestContext(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(common.ContextKeyDevelopment, development)
		if id := requestid.Get(c); id != "" {
			c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		}
		c.Next()
	}
}
