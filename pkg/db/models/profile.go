package models

import (
	"time"

	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
)

// Profile is the one-per-user public page owning an ordered set of cards.
type Profile struct {
	ID            uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID   `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Handle        string      `gorm:"column:handle;type:text;not null;uniqueIndex"`
	DisplayName   string      `gorm:"column:display_name;not null"`
	Bio           *string     `gorm:"column:bio"`
	Theme         types.Theme `gorm:"column:theme;type:jsonb"`
	AvatarAssetID *uuid.UUID  `gorm:"column:avatar_asset_id;type:uuid"`
	BannerAssetID *uuid.UUID  `gorm:"column:banner_asset_id;type:uuid"`
	Clicks        int         `gorm:"column:clicks;not null;default:0"`
	IsPublic      bool        `gorm:"column:is_public;not null;default:true"`
	PublishedAt   *time.Time  `gorm:"column:published_at"`
	Cards         []Card      `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
