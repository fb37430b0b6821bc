package server

import (
	"net/http"
	"time"

	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware tags every request with a correlation id, echoed in
// the X-Request-ID response header.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = utils.NewRequestID()
	}
	c.Set("request_id", requestID)
	c.Writer.Header().Set("X-Request-ID", requestID)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString("request_id"),
	})
}

// AdminAuthMiddleware gates the admin routes behind a shared token. With
// no token configured, admin routes are disabled entirely.
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("X-Admin-Token") != token {
			utils.JSONError(c, http.StatusForbidden, "FORBIDDEN_ACTION", "admin access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
