package models

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
}

// Author is the public projection of a user embedded into campgrounds and reviews
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents the user returned by register and login
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// CurrentUserResponse represents the user returned by /users/current
type CurrentUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
