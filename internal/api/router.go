package api

import (
	"io/fs"    // Sub filesystem for static assets
	"net/http" // HTTP file system
	"time"     // CORS max age

	"finance_tracker/internal/config"     // Application configuration
	"finance_tracker/internal/middleware" // Request id and logging
	"finance_tracker/web"                 // Embedded assets

	"github.com/gin-contrib/cors" // CORS for the JSON API
	"github.com/gin-gonic/gin"    // Gin web framework
)

// NewRouter wires every route onto a fresh Gin engine
func NewRouter(l Ledger, cfg *config.Config) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New() // Gin router instance
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	// Pages
	r.GET("/", DashboardHandler(l))                          // Dashboard
	r.GET("/transactions/new", NewTransactionFormHandler())  // Entry form
	r.POST("/transactions/new", CreateTransactionHandler(l)) // Form submission
	r.GET("/healthz", HealthHandler(l))                      // Liveness with DB ping

	// JSON API
	apiGroup := r.Group("/api")
	apiGroup.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	apiGroup.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) }) // Preflight is answered by the CORS middleware
	apiGroup.GET("/summary", SummaryJSONHandler(l))                 // Dashboard as JSON
	apiGroup.GET("/transactions", RecentJSONHandler(l))             // Newest transactions
	apiGroup.POST("/transactions", CreateTransactionJSONHandler(l)) // Record a transaction

	return r, nil
}

// corsConfig allows the configured origins, or any origin when none or "*" is given
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
