package dto

import "time"

// AuthResponse is returned by register, login, refresh and Google sign-in.
type AuthResponse struct {
	AccessToken           string       `json:"accessToken"`
	ExpiresAt             time.Time    `json:"expiresAt"`
	RefreshToken          string       `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
	User                  UserResponse `json:"user"`
}
