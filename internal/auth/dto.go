package auth

import (
	"github.com/bentolink/bentolink-backend/internal/users"
	"github.com/google/uuid"
)

// RegisterRequest carries a signup payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Handle      string `json:"handle" validate:"required"`
	DisplayName string `json:"displayName" validate:"omitempty,max=60"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token and its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is returned by register, login, and refresh.
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         users.UserDTO `json:"user"`
	ProfileID    uuid.UUID     `json:"profileId"`
	Handle       string        `json:"handle"`
}
