package middleware

import (
	"github.com/gin-gonic/gin"
)

// StreamMiddleware prepares a response for line-delimited JSON streaming.
// Proxies must not buffer or cache the relay output.
func StreamMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/x-ndjson")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		c.Next()
	}
}
