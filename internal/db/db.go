package db

import (
	"fmt"           // Error wrapping
	"os"            // Directory creation for SQLite files
	"path/filepath" // Path handling
	"time"          // Logger thresholds

	"finance_tracker/internal/config" // Application configuration

	"github.com/glebarez/sqlite"     // Pure-Go SQLite driver for GORM
	"github.com/sirupsen/logrus"     // Logrus for structured logging
	"gorm.io/driver/mysql"           // MySQL driver for GORM
	"gorm.io/gorm"                   // GORM ORM library
	gormlogger "gorm.io/gorm/logger" // GORM logger interface
)

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewLogger()})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer; keep one connection so writes never hit SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenSQLite opens (or creates) a SQLite file, used by tests and tooling
func OpenSQLite(path string) (*gorm.DB, error) {
	return Open(&config.Config{DBDriver: config.DriverSQLite, DBPath: path})
}

// NewLogger routes GORM's slow-query and error output through logrus
func NewLogger() gormlogger.Interface {
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond, // Report queries slower than this
		LogLevel:                  gormlogger.Warn,        // Errors and slow queries only
		IgnoreRecordNotFoundError: true,                   // Not found is not an error here
		Colorful:                  false,                  // Plain text for log collectors
	})
}
