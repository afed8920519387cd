package users

import (
	"time"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the public shape of an account.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FromModel maps the persistence model onto the wire shape.
func FromModel(user *models.User) UserDTO {
	if user == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		LastLogin: user.LastLoginAt,
		CreatedAt: user.CreatedAt,
	}
}
