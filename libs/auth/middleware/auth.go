package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yelpcamp/backend/libs/auth/service"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionCookieName is the name of the cookie carrying the session token
const SessionCookieName = "session"

// SessionValidator verifies a session token and returns its principal
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*service.Session, error)
}

// AuthMiddleware requires a live session and puts the user ID into the request context
func AuthMiddleware(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			session, err := sessions.Validate(r.Context(), token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), session.UserID)))
		})
	}
}

// OptionalAuthMiddleware attaches the user ID when a live session is present and never rejects
func OptionalAuthMiddleware(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token != "" {
				if session, err := sessions.Validate(r.Context(), token); err == nil {
					r = r.WithContext(WithUserID(r.Context(), session.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken reads the session token from the session cookie or a Bearer Authorization header
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}

	return ""
}

// WithUserID returns a copy of ctx carrying the user ID
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"you must be signed in"}`))
}
