package handlers

import "github.com/yelpcamp/backend/internal/models"

// MessageResponse represents a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse represents the result of register and login
type AuthResponse struct {
	Success bool                 `json:"success"`
	User    *models.UserResponse `json:"user,omitempty"`
}

// CurrentUserStatus represents the result of /users/current
type CurrentUserStatus struct {
	IsAuthenticated bool                        `json:"isAuthenticated"`
	User            *models.CurrentUserResponse `json:"user"`
}

// HealthResponse represents the result of /healthz
type HealthResponse struct {
	Status string `json:"status"`
}
