package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	Handle    string
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID    uuid.UUID  `json:"user_id"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
	Handle    string     `json:"handle,omitempty"`
	jwt.RegisteredClaims
}
