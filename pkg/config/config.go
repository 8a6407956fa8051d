// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Category CategoryConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type UploadConfig struct {
	MaxBytes    int64
	PreviewRows int
	SessionTTL  time.Duration
}

type CategoryConfig struct {
	// DBPath is the sqlite file holding the category rules.
	DBPath string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; variables already set in
// the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "localhost"),
			Port:        getEnvAsInt("SERVER_PORT", 8000),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Upload: UploadConfig{
			MaxBytes:    int64(getEnvAsInt("UPLOAD_MAX_BYTES", 16<<20)),
			PreviewRows: getEnvAsInt("PREVIEW_ROWS", 100),
			SessionTTL:  getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		},
		Category: CategoryConfig{
			DBPath: getEnv("CATEGORY_DB_PATH", "categories.db"),
		},
	}
	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
