package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware lets a dashboard served from another origin drive the API
// and read the frame sequence header of map images.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		origin := resolveOrigin(c.GetHeader("Origin"), allowed)
		headers.Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			headers.Add("Vary", "Origin")
		}
		headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		headers.Set("Access-Control-Allow-Headers", "Content-Type")
		headers.Set("Access-Control-Expose-Headers", "X-Frame-Seq, Retry-After")

		if c.Request.Method == http.MethodOptions {
			headers.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// resolveOrigin echoes the request origin when it is allowed. An empty
// allow list or a "*" entry allows any origin.
func resolveOrigin(requestOrigin string, allowed []string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, candidate := range allowed {
		switch {
		case candidate == "*":
			return "*"
		case requestOrigin != "" && strings.EqualFold(candidate, requestOrigin):
			return requestOrigin
		}
	}
	return allowed[0]
}
