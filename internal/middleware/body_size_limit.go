package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimitMiddleware caps request bodies at maxBodySize. Routes listed
// in overrides (by route template) get their own cap, e.g. file uploads.
func BodySizeLimitMiddleware(maxBodySize int64, overrides map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		limit := maxBodySize
		if n, ok := overrides[c.FullPath()]; ok {
			limit = n
		}

		if c.Request.ContentLength > limit {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		c.Next()
	}
}
