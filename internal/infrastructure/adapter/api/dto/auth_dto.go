package dto

import (
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// RegisterRequest represents the API request for user registration
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=64"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	ReferralCode string `json:"referralCode"`
}

// LoginRequest represents the API request for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses. Balance is a 2-decimal
// string; the integer paise never leave the server.
type UserResponse struct {
	ID               uint64 `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Balance          string `json:"balance"`
	IsAdmin          bool   `json:"isAdmin"`
	ReferralCode     string `json:"referralCode"`
	ReferralEarnings string `json:"referralEarnings"`
	CreatedAt        string `json:"createdAt"`
}

// SetAdminRequest represents the admin API request for toggling the admin flag
type SetAdminRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

// AuthResponse represents the API response for a successful login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a user entity to its API shape
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Balance:          user.FormattedBalance(),
		IsAdmin:          user.IsAdmin,
		ReferralCode:     user.ReferralCode,
		ReferralEarnings: entity.FormatAmount(user.ReferralEarnings),
		CreatedAt:        user.CreatedAt.Format(time.RFC3339),
	}
}
