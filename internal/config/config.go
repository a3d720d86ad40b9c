package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Database configuration
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	DBMaxConns          int32
	DBMinConns          int32
	DBMaxConnLifetime   time.Duration
	DBMaxConnIdleTime   time.Duration
	DBHealthCheckPeriod time.Duration

	// Website configuration
	WebsiteURL string

	// Media host configuration
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryFolder       string

	// Bot configuration
	SessionTTL time.Duration

	// Logging configuration
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		ReadTimeout:            getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:           getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:            getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnvInt("DB_PORT", 5432),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "namedu"),
		DBSSLMode:              getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:             int32(getEnvInt("DB_MAX_CONNS", 25)),
		DBMinConns:             int32(getEnvInt("DB_MIN_CONNS", 5)),
		DBMaxConnLifetime:      getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdleTime:      getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		DBHealthCheckPeriod:    getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		WebsiteURL:             getEnv("WEBSITE_URL", ""),
		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		CloudinaryFolder:       getEnv("CLOUDINARY_FOLDER", "news_images"),
		SessionTTL:             getEnvDuration("SESSION_TTL", 30*time.Minute),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.WebsiteURL == "" {
		return fmt.Errorf("WEBSITE_URL is required")
	}
	if c.CloudinaryCloudName == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME is required")
	}
	if c.CloudinaryUploadPreset == "" {
		return fmt.Errorf("CLOUDINARY_UPLOAD_PRESET is required")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
