package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverSQLite = "sqlite" // Embedded file database (default)
	DriverMySQL  = "mysql"  // MySQL server
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // sqlite or mysql
	DBPath      string        // SQLite database file
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	RedisAddr   string        // Redis server address, empty disables the cache
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Dashboard cache lifetime
	IsProd      bool          // Is production environment
	AutoMigrate bool          // Create the schema on server start
	CORSOrigins []string      // Allowed origins for the JSON API
	DevPort     string        // Port of the static dev server
	DevDir      string        // Directory served by the static dev server
	LogLevel    string        // logrus level name
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() *Config {
	return &Config{
		AppPort:     getenv("APP_PORT", "8080"),                         // Application port
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", DriverSQLite)), // Database driver
		DBPath:      getenv("DB_PATH", "finance.db"),                    // SQLite file
		DBUser:      getenv("DB_USER", "root"),                          // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),                           // Database password
		DBHost:      getenv("DB_HOST", "127.0.0.1"),                     // Database host
		DBPort:      getenv("DB_PORT", "3306"),                          // Database port
		DBName:      getenv("DB_NAME", "finance"),                       // Database name
		RedisAddr:   os.Getenv("REDIS_ADDR"),                            // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                            // Redis password
		RedisDB:     getenvInt("REDIS_DB", 0),                           // Redis database number
		CacheTTL:    getenvDuration("CACHE_TTL", 60*time.Second),        // Dashboard cache lifetime
		IsProd:      os.Getenv("IS_PROD") == "true",                     // Is production environment
		AutoMigrate: getenv("AUTO_MIGRATE", "true") == "true",           // Create schema on start
		CORSOrigins: getenvList("CORS_ORIGINS", []string{"http://localhost:8000"}),
		DevPort:     getenv("DEV_PORT", "8000"),      // Static dev server port
		DevDir:      getenv("DEV_DIR", "web/static"), // Static dev server root
		LogLevel:    getenv("LOG_LEVEL", "info"),     // Log level
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		auth := c.DBUser
		if c.DBPassword != "" {
			auth += ":" + c.DBPassword
		}
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC", auth, c.DBHost, c.DBPort, c.DBName)
	}
	return c.DBPath
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getenvList(k string, def []string) []string {
	raw := os.Getenv(k)
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
