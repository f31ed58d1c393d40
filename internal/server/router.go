// Package server assembles the HTTP router of the API
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/yelpcamp/backend/internal/handlers"
	"github.com/yelpcamp/backend/internal/middleware"
	authmw "github.com/yelpcamp/backend/libs/auth/middleware"
	libhandlers "github.com/yelpcamp/backend/libs/handlers"
	loggerMiddleware "github.com/yelpcamp/backend/libs/logger/middleware"
	sharedMiddleware "github.com/yelpcamp/backend/libs/middlewares"
	"go.uber.org/zap"
)

// CampgroundService serves the campground routes and the ownership checks
type CampgroundService interface {
	handlers.CampgroundService
	middleware.CampgroundFinder
}

// ReviewService serves the review routes and the ownership checks
type ReviewService interface {
	handlers.ReviewService
	middleware.ReviewFinder
}

// Pinger reports whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures the router
type Options struct {
	AllowedOrigins    []string
	RequestsPerMinute int
	MaxRequestSize    int64
	SessionTTL        time.Duration
	CookieSecure      bool
	// SwaggerURL is the doc.json location used by the Swagger UI. Empty disables the UI.
	SwaggerURL string
	// UploadsDir is served under /uploads when images are stored on local disk
	UploadsDir string
}

// Dependencies are the collaborators behind the routes
type Dependencies struct {
	Campgrounds CampgroundService
	Reviews     ReviewService
	Users       handlers.UserService
	Sessions    authmw.SessionValidator
	Validator   middleware.StructValidator
	DB          Pinger
}

// NewRouter builds the router with the shared middleware chain and every API route
func NewRouter(opts Options, deps Dependencies, logger *zap.Logger) chi.Router {
	base := libhandlers.BaseHandler{Logger: logger}

	authMiddleware := authmw.AuthMiddleware(deps.Sessions)
	optionalAuthMiddleware := authmw.OptionalAuthMiddleware(deps.Sessions)
	ownership := middleware.NewOwnership(base, deps.Campgrounds, deps.Reviews)
	validator := middleware.NewBodyValidator(base, deps.Validator)

	campgroundHandler := handlers.NewCampgroundHandler(deps.Campgrounds, logger)
	reviewHandler := handlers.NewReviewHandler(deps.Reviews, logger)
	userHandler := handlers.NewUserHandler(deps.Users, handlers.CookieOptions{
		TTL:    opts.SessionTTL,
		Secure: opts.CookieSecure,
	}, logger)

	r := chi.NewRouter()

	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger))
	r.Use(sharedMiddleware.CORSMiddleware(opts.AllowedOrigins))
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}
	if opts.MaxRequestSize > 0 {
		r.Use(sharedMiddleware.RequestSizeLimitMiddleware(opts.MaxRequestSize))
	}

	if opts.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(opts.SwaggerURL)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(r.Context()); err != nil {
				logger.Error("health check failed", zap.Error(err))
				base.RespondJSON(w, http.StatusServiceUnavailable, handlers.HealthResponse{Status: "unavailable"})
				return
			}
		}
		base.RespondJSON(w, http.StatusOK, handlers.HealthResponse{Status: "ok"})
	})

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", noSniff(http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))))
	}

	r.Route("/api", func(r chi.Router) {
		campgroundHandler.RegisterRoutes(r, authMiddleware, ownership, validator)
		reviewHandler.RegisterRoutes(r, authMiddleware, ownership, validator)
		userHandler.RegisterRoutes(r, authMiddleware, optionalAuthMiddleware)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			base.RespondError(w, http.StatusNotFound, "API endpoint not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			base.RespondError(w, http.StatusNotFound, "API endpoint not found")
		})
	})

	return r
}

// noSniff stops browsers from guessing a type other than the one the stored extension gives
func noSniff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
