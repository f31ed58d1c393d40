package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yelpcamp/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password
var ErrInvalidCredentials = fmt.Errorf("password or username is incorrect: %w", models.ErrUnauthorized)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user and sets its ID.
	//
	// A duplicate username or email is reported as models.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionManager starts and ends login sessions
type SessionManager interface {
	// Method Create starts a session for the user and returns the session token.
	Create(ctx context.Context, userID int) (string, error)
	// Method Destroy revokes the session referenced by the token.
	Destroy(ctx context.Context, token string) error
}

// StructValidator validates tagged request payloads
type StructValidator interface {
	Struct(payload any) error
}

type userService struct {
	repo      UserRepository
	sessions  SessionManager
	validator StructValidator
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, sessions SessionManager, validator StructValidator, logger *zap.Logger) *userService {
	return &userService{
		repo:      repo,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

// Register creates an account and logs it in, returning the user and its session token
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validator.Struct(req); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("a user with the given username %w", models.ErrConflict)
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("a user with the given email %w", models.ErrConflict)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to start session after registration", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, "", fmt.Errorf("failed to start session: %w", err)
	}

	return user, token, nil
}

// Login checks the credentials and starts a session, returning the user and its session token
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to start session", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, "", fmt.Errorf("failed to start session: %w", err)
	}

	return user, token, nil
}

// Logout revokes the session token
func (s *userService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
