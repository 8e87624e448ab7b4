package middleware

import (
	"fmt"
	"net/http"

	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BodySizeLimit caps request bodies at maxSize. A declared Content-Length over the
// limit is answered with a 413 envelope; bodies of unknown length fail on read.
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", common.RequestIDFromContext(c.Request.Context())),
			)
			common.RespondError(c, http.StatusRequestEntityTooLarge, "Request body too large",
				fmt.Errorf("content length %d exceeds %d bytes", c.Request.ContentLength, maxSize))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
