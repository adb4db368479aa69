package api

import (
	"html/template" // HTML templates
	"net/http"      // HTTP status codes
	"time"          // Timestamps in templates

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/ledger" // Ledger labels
	"finance_tracker/internal/money"  // Currency formatting
	"finance_tracker/web"             // Embedded templates

	"github.com/dustin/go-humanize" // Relative times
	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// templateFuncs are available to every page
var templateFuncs = template.FuncMap{
	"money": money.Format, // Signed cents as $1,234.56
	"ago":   func(t time.Time) string { return humanize.Time(t) },
	"category": func(tx domain.Transaction) string {
		return tx.CategoryLabel(ledger.UncategorizedLabel)
	},
}

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(web.TemplatesFS, "templates/*.html")
}

// renderError logs err and shows the error page with a 500 status
func renderError(c *gin.Context, err error) {
	_ = c.Error(err) // Attach to the context for the request logger
	logrus.WithFields(logrus.Fields{
		"path":       c.Request.URL.Path,       // Request path
		"request_id": c.GetString("requestID"), // Correlation id
		"error":      err.Error(),              // Error message
	}).Error("Request failed")
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Message": userMessage(err),
	})
}

// userMessage hides storage details from the page
func userMessage(err error) string {
	if ledger.IsValidation(err) {
		return err.Error()
	}
	return "The ledger is unavailable right now. Please try again."
}
