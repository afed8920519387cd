package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is a best-effort trail of profile and card mutations.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid"`
	Action    string     `gorm:"column:action;not null"`
	Entity    *string    `gorm:"column:entity"`
	EntityID  *string    `gorm:"column:entity_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
