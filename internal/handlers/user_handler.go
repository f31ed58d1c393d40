package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/services"
	authmw "github.com/yelpcamp/backend/libs/auth/middleware"
	"github.com/yelpcamp/backend/libs/handlers"
	"go.uber.org/zap"
)

// invalidCredentialsMessage is the only message a failed login ever returns
const invalidCredentialsMessage = "Password or username is incorrect"

// UserService is the interface that wraps methods for account business logic.
type UserService interface {
	// Method Register validates and creates an account and starts its session.
	//
	// If the username or email is taken, an error wrapping models.ErrConflict is returned.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	// Method Login checks the credentials and starts a session.
	//
	// Unknown users and wrong passwords both return services.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	// Method Logout revokes the session token.
	Logout(ctx context.Context, token string) error
	// Method GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// CookieOptions configures the session cookie
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

// UserHandler handles account and session HTTP requests
type UserHandler struct {
	handlers.BaseHandler
	service UserService
	cookie  CookieOptions
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, cookie CookieOptions, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		service:     svc,
		cookie:      cookie,
	}
}

// RegisterRoutes registers all user handler routes.
// Note: This assumes the router is already scoped to /api
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, optionalAuthMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authMiddleware).Get("/logout", h.Logout)
		r.With(optionalAuthMiddleware).Get("/current", h.Current)
	})
}

// Register handles POST /users/register
// @Summary Register a new user
// @Description Create an account with email, username and password and sign it in with a session cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body or user already exists"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeCredentials(r, &req, func(get func(string) string) {
		req.Email = get("email")
		req.Username = get("username")
		req.Password = get("password")
	}); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	user, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.Logger.Info("user registered", zap.Int("user_id", user.ID))
	h.RespondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    &models.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// Login handles POST /users/login
// @Summary Login user
// @Description Authenticate with username and password. The session is returned as an HTTP-only cookie.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeCredentials(r, &req, func(get func(string) string) {
		req.Username = get("username")
		req.Password = get("password")
	}); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.RespondError(w, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    &models.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// Logout handles GET /users/logout
// @Summary Logout user
// @Description Revoke the current session and clear its cookie
// @Tags users
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /users/logout [get]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), authmw.ExtractToken(r)); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.clearSessionCookie(w)
	h.RespondJSON(w, http.StatusOK, AuthResponse{Success: true})
}

// Current handles GET /users/current
// @Summary Current user
// @Description Report whether the request carries a valid session and who it belongs to
// @Tags users
// @Produce json
// @Success 200 {object} CurrentUserStatus
// @Router /users/current [get]
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.RespondJSON(w, http.StatusOK, CurrentUserStatus{})
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		h.RespondJSON(w, http.StatusOK, CurrentUserStatus{})
		return
	}
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, CurrentUserStatus{
		IsAuthenticated: true,
		User: &models.CurrentUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// decodeCredentials reads a JSON body into dst, or a form body through fill
func decodeCredentials(r *http.Request, dst any, fill func(get func(string) string)) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return models.NewValidationError("body", "is malformed")
		}
		fill(r.PostFormValue)
		return nil
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return models.NewValidationError("body", "is malformed")
		}
		return nil
	}
}
