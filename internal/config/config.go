package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Reference ReferenceConfig
	CORS      CORSConfig
	Yahoo     YahooConfig
	Redis     RedisConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port          string
	Host          string
	Addr          string // Combined host:port for convenience
	MaxUploadSize int64  // Maximum multipart body size in bytes
}

// ReferenceConfig holds the location of the reference tables (splits, exchange rates,
// currency factors) and the cron schedule used to reload them.
type ReferenceConfig struct {
	DBPath          string
	RefreshSchedule string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// YahooConfig holds settings for the price-quote collaborator.
type YahooConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimit   float64 // requests per second, 0 disables throttling
	Burst       int
	Concurrency int
	WindowDays  int
	Disabled    bool
}

// RedisConfig holds the optional quote cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var errs []string
	intVar := func(key string, def int) int {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return def
		}
		return v
	}
	floatVar := func(key string, def float64) float64 {
		v, err := strconv.ParseFloat(getEnv(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return def
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		v, err := time.ParseDuration(getEnv(key, def.String()))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return def
		}
		return v
	}

	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "5001"),
			Host:          getEnv("SERVER_HOST", "localhost"),
			MaxUploadSize: int64(intVar("MAX_UPLOAD_MB", 32)) << 20,
		},
		Reference: ReferenceConfig{
			DBPath:          getEnv("REFERENCE_DB_PATH", "./data/reference.db"),
			RefreshSchedule: getEnv("REFERENCE_REFRESH", "@every 15m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Yahoo: YahooConfig{
			BaseURL:     getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:     durationVar("YAHOO_TIMEOUT", 8*time.Second),
			RateLimit:   floatVar("YAHOO_RATE_LIMIT", 5),
			Burst:       intVar("YAHOO_BURST", 5),
			Concurrency: intVar("YAHOO_CONCURRENCY", 4),
			WindowDays:  intVar("PRICE_WINDOW_DAYS", 2),
			Disabled:    getEnv("YAHOO_DISABLED", "false") == "true",
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       intVar("REDIS_DB", 0),
			TTL:      durationVar("QUOTE_CACHE_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	if config.Yahoo.Concurrency < 1 {
		config.Yahoo.Concurrency = 1
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
