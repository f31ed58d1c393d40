package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yelpcamp/backend/internal/models"
	"github.com/yelpcamp/backend/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUserService(t *testing.T) {
	repo := &mockUserRepository{}
	sessions := &mockSessionManager{}
	v := validation.New()
	logger := zap.NewNop()

	svc := NewUserService(repo, sessions, v, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.repo)
	assert.Equal(t, sessions, svc.sessions)
	assert.Equal(t, logger, svc.logger)
}

func TestUserService_Register(t *testing.T) {
	validRequest := func() *models.RegisterRequest {
		return &models.RegisterRequest{Email: "  Alice@Example.com ", Username: " alice ", Password: "secret1"}
	}

	tests := []struct {
		name          string
		request       *models.RegisterRequest
		repo          *mockUserRepository
		sessions      *mockSessionManager
		expectedErr   error
		violations    int
		expectedError bool
	}{
		{
			name:     "success logs the user in",
			request:  validRequest(),
			repo:     &mockUserRepository{nextID: 1},
			sessions: &mockSessionManager{},
		},
		{
			name:          "invalid payload",
			request:       &models.RegisterRequest{Email: "not-an-email", Username: "", Password: "123"},
			repo:          &mockUserRepository{},
			sessions:      &mockSessionManager{},
			violations:    3,
			expectedError: true,
		},
		{
			name:          "multibyte password over 72 bytes",
			request:       &models.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: strings.Repeat("é", 40)},
			repo:          &mockUserRepository{nextID: 1},
			sessions:      &mockSessionManager{},
			violations:    1,
			expectedError: true,
		},
		{
			name:          "taken username",
			request:       validRequest(),
			repo:          &mockUserRepository{usernameExists: true},
			sessions:      &mockSessionManager{},
			expectedErr:   models.ErrConflict,
			expectedError: true,
		},
		{
			name:          "taken email",
			request:       validRequest(),
			repo:          &mockUserRepository{emailExists: true},
			sessions:      &mockSessionManager{},
			expectedErr:   models.ErrConflict,
			expectedError: true,
		},
		{
			name:          "duplicate detected on insert",
			request:       validRequest(),
			repo:          &mockUserRepository{createErr: models.ErrConflict},
			sessions:      &mockSessionManager{},
			expectedErr:   models.ErrConflict,
			expectedError: true,
		},
		{
			name:          "existence check error",
			request:       validRequest(),
			repo:          &mockUserRepository{existsErr: errors.New("database error")},
			sessions:      &mockSessionManager{},
			expectedError: true,
		},
		{
			name:          "session error",
			request:       validRequest(),
			repo:          &mockUserRepository{nextID: 1},
			sessions:      &mockSessionManager{createErr: errors.New("redis down")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.repo, tt.sessions, validation.New(), zap.NewNop())

			user, token, err := svc.Register(context.Background(), tt.request)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				if tt.violations > 0 {
					var validationErr *models.ValidationError
					require.ErrorAs(t, err, &validationErr)
					assert.Len(t, validationErr.Violations, tt.violations)
					assert.Nil(t, tt.repo.created)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, user.ID)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tt.repo.created.PasswordHash), []byte("secret1")))
			assert.Equal(t, "token-1", token)
			assert.Equal(t, []int{1}, tt.sessions.userIDs)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &models.User{ID: 3, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name          string
		request       *models.LoginRequest
		repo          *mockUserRepository
		sessions      *mockSessionManager
		expectedErr   error
		expectedError bool
	}{
		{
			name:     "success",
			request:  &models.LoginRequest{Username: "alice", Password: "secret1"},
			repo:     &mockUserRepository{user: alice},
			sessions: &mockSessionManager{},
		},
		{
			name:          "wrong password",
			request:       &models.LoginRequest{Username: "alice", Password: "wrong"},
			repo:          &mockUserRepository{user: alice},
			sessions:      &mockSessionManager{},
			expectedErr:   ErrInvalidCredentials,
			expectedError: true,
		},
		{
			name:          "unknown user",
			request:       &models.LoginRequest{Username: "mallory", Password: "secret1"},
			repo:          &mockUserRepository{user: alice},
			sessions:      &mockSessionManager{},
			expectedErr:   ErrInvalidCredentials,
			expectedError: true,
		},
		{
			name:          "empty credentials",
			request:       &models.LoginRequest{},
			repo:          &mockUserRepository{user: alice},
			sessions:      &mockSessionManager{},
			expectedErr:   ErrInvalidCredentials,
			expectedError: true,
		},
		{
			name:          "repository error is not a credential error",
			request:       &models.LoginRequest{Username: "alice", Password: "secret1"},
			repo:          &mockUserRepository{getErr: errors.New("database error")},
			sessions:      &mockSessionManager{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.repo, tt.sessions, validation.New(), zap.NewNop())

			user, token, err := svc.Login(context.Background(), tt.request)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, user)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
					assert.ErrorIs(t, err, models.ErrUnauthorized)
				} else {
					assert.NotErrorIs(t, err, ErrInvalidCredentials)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, alice, user)
			assert.Equal(t, "token-3", token)
		})
	}
}

func TestUserService_Logout(t *testing.T) {
	sessions := &mockSessionManager{}
	svc := NewUserService(&mockUserRepository{}, sessions, validation.New(), zap.NewNop())

	require.NoError(t, svc.Logout(context.Background(), "token-3"))
	assert.Equal(t, []string{"token-3"}, sessions.destroyed)

	sessions.destroyErr = errors.New("redis down")
	assert.Error(t, svc.Logout(context.Background(), "token-3"))
}

func TestUserService_GetByID(t *testing.T) {
	alice := &models.User{ID: 3, Username: "alice"}
	svc := NewUserService(&mockUserRepository{user: alice}, &mockSessionManager{}, validation.New(), zap.NewNop())

	user, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, alice, user)

	_, err = svc.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
