package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request identifiers
)

// RequestIDHeader carries the request identifier in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Honour an upstream id
		if id == "" || len(id) > 64 {
			id = uuid.NewString() // Generate a fresh one
		}
		c.Set("requestID", id)                     // Store for handlers and the logger
		c.Writer.Header().Set(RequestIDHeader, id) // Echo to the client
		c.Next()
	}
}
