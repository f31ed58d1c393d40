// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Image storage backends
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Session   SessionConfig
	Storage   StorageConfig
	Geocoder  GeocoderConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings shared by the session store and the task queue
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// StorageConfig selects and configures the image storage backend
type StorageConfig struct {
	Backend string

	// local backend
	MediaBasePath string
	MediaBaseURL  string

	// s3 backend
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3PublicURL string
	S3Prefix    string
}

// GeocoderConfig holds geocoding API settings. An empty APIKey disables geocoding.
type GeocoderConfig struct {
	APIKey  string
	BaseURL string
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// Database configuration
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	dbPortStr, err := requireEnv("DB_PORT")
	if err != nil {
		return nil, err
	}
	if cfg.Database.Port, err = strconv.Atoi(dbPortStr); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	if cfg.Database.User, err = requireEnv("DB_USER"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.DBName, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 3000); err != nil {
		return nil, err
	}

	// Logging configuration
	cfg.Logging.Level = envOr("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Session configuration
	if cfg.Session.Secret, err = requireEnv("SESSION_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = time.ParseDuration(envOr("SESSION_TTL", "168h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Session.CookieSecure, err = strconv.ParseBool(envOr("COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	// Redis configuration
	cfg.Redis.Host = envOr("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Image storage configuration
	cfg.Storage.Backend = strings.ToLower(envOr("IMAGE_STORAGE", StorageLocal))
	switch cfg.Storage.Backend {
	case StorageLocal:
		cfg.Storage.MediaBasePath = envOr("MEDIA_BASE_PATH", "./uploads")
		cfg.Storage.MediaBaseURL = envOr("MEDIA_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", cfg.Server.Port))
	case StorageS3:
		if cfg.Storage.S3Bucket, err = requireEnv("S3_BUCKET"); err != nil {
			return nil, err
		}
		cfg.Storage.S3Region = envOr("S3_REGION", "us-east-1")
		cfg.Storage.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.Storage.S3SecretKey = os.Getenv("S3_SECRET_KEY")
		cfg.Storage.S3Endpoint = os.Getenv("S3_ENDPOINT")
		cfg.Storage.S3PublicURL = os.Getenv("S3_PUBLIC_URL")
		cfg.Storage.S3Prefix = envOr("S3_PREFIX", "YelpCamp")
	default:
		return nil, fmt.Errorf("invalid IMAGE_STORAGE: %q", cfg.Storage.Backend)
	}

	// Geocoder configuration
	cfg.Geocoder.APIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.Geocoder.BaseURL = envOr("GEOCODER_BASE_URL", "https://api.maptiler.com/geocoding")

	// Rate limiting
	if cfg.RateLimit.RequestsPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 300); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// parseOrigins splits a comma-separated origin list, an empty value allows no origins
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
