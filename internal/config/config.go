package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Service  ServiceConfig
	Database DatabaseConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for the vendor endpoints
}

// ServiceConfig carries restaurant identity used in outbound messages.
type ServiceConfig struct {
	Name           string
	VendorWhatsApp string // destination number for order notifications, digits only
	PixKey         string
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Empty means the in-memory
	// order store is used instead.
	URL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Local development convenience; production supplies real env vars
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("VENDOR_API_KEYS", []string{"apitest"}),
		},
		Service: ServiceConfig{
			Name:           getEnv("SERVICE_NAME", "Mesa e Sabores"),
			VendorWhatsApp: getEnv("VENDOR_WHATSAPP", "5532984218936"),
			PixKey:         getEnv("PIX_KEY", "32984218936"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one vendor API key must be configured")
	}

	if c.Service.VendorWhatsApp == "" {
		return fmt.Errorf("VENDOR_WHATSAPP is required")
	}

	for _, r := range c.Service.VendorWhatsApp {
		if r < '0' || r > '9' {
			return fmt.Errorf("VENDOR_WHATSAPP must contain digits only, got %q", c.Service.VendorWhatsApp)
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
