package main

import (
	"context" // Context for the seed queries
	"flag"    // Command line flags

	"finance_tracker/internal/cache"  // Dashboard cache
	"finance_tracker/internal/config" // Custom import path (Config)
	"finance_tracker/internal/db"     // Custom import path (Database)
	"finance_tracker/internal/ledger" // Demo rows

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "insert demo transactions when the table is empty")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if !*seed {
		return
	}

	// Seeding must drop a cached dashboard so the demo rows show up at once
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
		defer rdb.Close()
	}
	svc := ledger.NewService(ledger.NewStore(gdb), cache.New(rdb, cfg.CacheTTL))
	if _, err := svc.SeedDemo(context.Background()); err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
}
