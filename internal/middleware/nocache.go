package middleware

import "github.com/gin-gonic/gin" // Gin web framework

// NoCache tells browsers to always refetch, used by the static dev server
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		c.Next()
	}
}
