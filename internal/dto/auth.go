package dto

import (
	"time"

	"github.com/Guptsonu22/task-management-api/internal/domain"
)

// RegisterRequest represents a registration request. Field-level validation
// happens in the auth service so the validator messages surface verbatim.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries the refresh token for refresh and logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the sanitized user shape returned by auth endpoints; the
// password hash never leaves the service layer.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// TokenResponse is returned by refresh
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ToUserResponse converts a domain user to its response shape
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
