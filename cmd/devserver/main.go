package main

import (
	"flag" // Command line flags

	"finance_tracker/internal/config"     // Custom package for configuration
	"finance_tracker/internal/middleware" // No-cache headers and logging

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Serves a directory of static files with caching disabled, for front-end work
func main() {
	cfg := config.LoadConfig() // Load configuration
	dir := flag.String("dir", cfg.DevDir, "directory to serve")
	port := flag.String("port", cfg.DevPort, "port to listen on")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	r := gin.New()
	r.Use(middleware.Logger(), middleware.NoCache(), gin.Recovery())
	r.Static("/", *dir)

	logrus.WithFields(logrus.Fields{
		"dir": *dir,
		"url": "http://localhost:" + *port,
	}).Info("Static dev server running, press Ctrl+C to stop")
	if err := r.Run(":" + *port); err != nil {
		logrus.Fatalf("dev server error: %v", err)
	}
}
