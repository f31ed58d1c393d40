package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session does not exist or has expired
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists live sessions keyed by session ID
type SessionStore interface {
	// Save stores the session for the given user with the given time to live.
	Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error
	// Get returns the user ID of a live session or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (int, error)
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// Session is an authenticated principal extracted from a session cookie
type Session struct {
	ID     string
	UserID int
}

// SessionManager issues and verifies session cookies.
// The cookie value is an HS256 JWT carrying the session ID; the session itself lives in the store,
// so logging out revokes the cookie before it expires.
type SessionManager struct {
	secret string
	ttl    time.Duration
	store  SessionStore
}

// NewSessionManager creates a new session manager
func NewSessionManager(secret string, ttl time.Duration, store SessionStore) *SessionManager {
	return &SessionManager{
		secret: secret,
		ttl:    ttl,
		store:  store,
	}
}

// TTL returns the lifetime of new sessions
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create starts a new session for the user and returns the signed cookie value
func (m *SessionManager) Create(ctx context.Context, userID int) (string, error) {
	sessionID := uuid.New().String()

	if err := m.store.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sid":     sessionID,
		"user_id": userID,
		"exp":     now.Add(m.ttl).Unix(),
		"iat":     now.Unix(),
		"type":    "session",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies the cookie value and checks that its session is still live
func (m *SessionManager) Validate(ctx context.Context, tokenString string) (*Session, error) {
	session, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := m.store.Get(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if userID != session.UserID {
		return nil, fmt.Errorf("session user mismatch")
	}

	return session, nil
}

// Destroy revokes the session referenced by the cookie value
func (m *SessionManager) Destroy(ctx context.Context, tokenString string) error {
	session, err := m.parse(tokenString)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// parse verifies the signature, expiry and type of a session token
func (m *SessionManager) parse(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "session" {
		return nil, fmt.Errorf("token is not a session token")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return nil, fmt.Errorf("sid not found in token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("user_id not found in token")
	}

	return &Session{ID: sessionID, UserID: int(userID)}, nil
}
