package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// DashboardHandler renders monthly totals, the balance and the latest transactions
func DashboardHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := l.Dashboard(c.Request.Context()) // Aggregate from the ledger
		if err != nil {
			renderError(c, err) // Storage failure
			return
		}
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"Title":   "Dashboard", // Page title
			"Summary": summary,     // View model
			"Flash":   popFlash(c), // Notice from the previous request
		})
	}
}

// SummaryJSONHandler returns the dashboard view model as JSON
func SummaryJSONHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := l.Dashboard(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HealthHandler reports whether the database answers
func HealthHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := l.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
