package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "yelp")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "yelpcamp")
	t.Setenv("SESSION_SECRET", "thisshouldbeabettersecret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, "./uploads", cfg.Storage.MediaBasePath)
	assert.Equal(t, "http://localhost:3000/uploads", cfg.Storage.MediaBaseURL)
	assert.Equal(t, 300, cfg.RateLimit.RequestsPerMinute)
	assert.Empty(t, cfg.Geocoder.APIKey)
	assert.Equal(t, "yelp:secret@tcp(db:3306)/yelpcamp?parseTime=true&charset=utf8mb4&multiStatements=true", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://yelpcamp.example ,")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("IMAGE_STORAGE", "S3")
	t.Setenv("S3_BUCKET", "camp-images")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("GEOCODER_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://yelpcamp.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, StorageS3, cfg.Storage.Backend)
	assert.Equal(t, "camp-images", cfg.Storage.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.S3Region)
	assert.Equal(t, "YelpCamp", cfg.Storage.S3Prefix)
	assert.Equal(t, "key", cfg.Geocoder.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{name: "missing db host", env: map[string]string{"DB_HOST": ""}, expectedError: "DB_HOST is required"},
		{name: "invalid db port", env: map[string]string{"DB_PORT": "abc"}, expectedError: "invalid DB_PORT"},
		{name: "missing session secret", env: map[string]string{"SESSION_SECRET": ""}, expectedError: "SESSION_SECRET is required"},
		{name: "invalid session ttl", env: map[string]string{"SESSION_TTL": "week"}, expectedError: "invalid SESSION_TTL"},
		{name: "invalid server port", env: map[string]string{"SERVER_PORT": "x"}, expectedError: "invalid SERVER_PORT"},
		{name: "unknown storage", env: map[string]string{"IMAGE_STORAGE": "ftp"}, expectedError: "invalid IMAGE_STORAGE"},
		{name: "s3 without bucket", env: map[string]string{"IMAGE_STORAGE": "s3"}, expectedError: "S3_BUCKET is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
