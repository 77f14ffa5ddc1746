// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Fiscal2/FiscalFundamentals/internal/utils"
)

// Config holds application configuration
type Config struct {
	SupabaseURL       string        // Supabase project URL
	SupabaseKey       string        // Service-role key for server-side access
	Port              int           // HTTP listen port
	LogLevel          string        // debug, info, warn, error
	DevMode           bool          // Pretty logs, no response compression
	CacheTTL          time.Duration // Financials cache time-to-live
	AllowedOrigins    []string      // CORS origin allowlist
	CacheWarmSchedule string        // Cron spec for cache warming; empty disables
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	origins := utils.ParseCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	cfg := &Config{
		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseKey:       getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		Port:              getEnvAsInt("PORT", 8000),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		CacheTTL:          time.Duration(getEnvAsInt("CACHE_TTL_MINUTES", 1440)) * time.Minute,
		AllowedOrigins:    origins,
		CacheWarmSchedule: getEnv("CACHE_WARM_SCHEDULE", ""),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_MINUTES must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
