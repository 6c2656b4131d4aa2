package auth

import "time"

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// UserResponse is the user data embedded in auth responses.
type UserResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	RoleID int64  `json:"role_id"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Lockout policy for repeated failed logins.
const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
	tokenExpirySecs   = 24 * 60 * 60
)
