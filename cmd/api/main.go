package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/yelpcamp/backend/docs"
	"github.com/yelpcamp/backend/internal/config"
	"github.com/yelpcamp/backend/internal/geocoding"
	"github.com/yelpcamp/backend/internal/repositories"
	"github.com/yelpcamp/backend/internal/server"
	"github.com/yelpcamp/backend/internal/services"
	"github.com/yelpcamp/backend/internal/storage"
	"github.com/yelpcamp/backend/internal/tasks"
	"github.com/yelpcamp/backend/internal/validation"
	"github.com/yelpcamp/backend/libs/auth/service"
	"github.com/yelpcamp/backend/libs/logger"
	"go.uber.org/zap"
)

// maxRequestSize bounds a whole request body, image uploads included
const maxRequestSize = 20 << 20

// @title YelpCamp API
// @version 1.0
// @description API for browsing, creating and reviewing campgrounds

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting YelpCamp API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize sessions
	sessions := service.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL, service.NewRedisSessionStore(rdb))

	// Initialize the image cleanup queue client
	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer queue.Close()

	// Initialize image storage and geocoder
	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	geocoder := geocoding.NewMapTilerGeocoder(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.APIKey,
		&http.Client{Timeout: 10 * time.Second},
		logger.Logger,
	)
	cleaner := tasks.NewImageCleaner(queue, images, logger.Logger)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	campgroundRepo := repositories.NewCampgroundRepository(db, logger.Logger)
	reviewRepo := repositories.NewReviewRepository(db, logger.Logger)

	// Initialize services
	validator := validation.New()
	campgroundService := services.NewCampgroundService(campgroundRepo, images, geocoder, cleaner, storage.Extension, logger.Logger)
	reviewService := services.NewReviewService(reviewRepo, campgroundRepo, logger.Logger)
	userService := services.NewUserService(userRepo, sessions, validator, logger.Logger)

	// Setup router
	opts := server.Options{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		MaxRequestSize:    maxRequestSize,
		SessionTTL:        cfg.Session.TTL,
		CookieSecure:      cfg.Session.CookieSecure,
		SwaggerURL:        fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port),
	}
	if cfg.Storage.Backend == config.StorageLocal {
		opts.UploadsDir = cfg.Storage.MediaBasePath
	}

	r := server.NewRouter(opts, server.Dependencies{
		Campgrounds: campgroundService,
		Reviews:     reviewService,
		Users:       userService,
		Sessions:    sessions,
		Validator:   validator,
		DB:          db,
	}, logger.Logger)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "yelpcamp_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
