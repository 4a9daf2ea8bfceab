// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/moneymate/internal/extract"
)

type Config struct {
	// HTTP Server
	Port            string
	StaticPath      string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string

	// Database
	DBPath string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// Receipt analysis
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	AnalyzeTimeout time.Duration
	MaxImageBytes  int64
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	// Local development convenience; missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		StaticPath:      getEnv("STATIC_PATH", "./static"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBPath: getEnv("DB_PATH", "./data/moneymate.db"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		GeminiAPIKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", extract.DefaultModel),
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", ""),
		AnalyzeTimeout: getEnvDuration("ANALYZE_TIMEOUT", 60*time.Second),
		MaxImageBytes:  getEnvInt64("MAX_IMAGE_BYTES", 20<<20),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT secret cannot be empty")
	}
	if c.JWTTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid JWT TTL %v: must be at least 1 minute", c.JWTTTL))
	}

	if c.GeminiModel == "" {
		errors = append(errors, "Gemini model cannot be empty")
	}
	if c.AnalyzeTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid analyze timeout %v: must be at least 1 second", c.AnalyzeTimeout))
	}
	if c.MaxImageBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max image size %d: must be at least 1024 bytes", c.MaxImageBytes))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
