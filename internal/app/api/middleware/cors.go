package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetCORSHeaders writes the permissive CORS headers the webhook surface
// advertises. Exported so the function-style binding can share it.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
}

// CORSMiddleware attaches CORS headers to every webhook response and answers
// preflight requests immediately with 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		SetCORSHeaders(c.Writer.Header())
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
