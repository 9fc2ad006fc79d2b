package dto

import (
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest trades a refresh token for a new token pair.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code from Google's popup flow.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type UserResponse struct {
	UserID       string              `json:"userID"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		AuthProvider: user.AuthProvider,
		CreatedAt:    user.CreatedAt,
	}
}
