package models

import (
	"time"

	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
)

// Card is one positioned tile on a profile grid. Position is unique per
// profile at all times; the composite unique index is the invariant the
// layout engine's two-phase writes are built around.
type Card struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID   uuid.UUID      `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:cards_profile_position_idx,priority:1"`
	Type        enums.CardType `gorm:"column:type;type:card_type;not null"`
	Title       string         `gorm:"column:title;not null"`
	Subtitle    *string        `gorm:"column:subtitle"`
	URL         *string        `gorm:"column:url"`
	Icon        *string        `gorm:"column:icon"`
	Cols        int            `gorm:"column:cols;not null;default:3"`
	Rows        int            `gorm:"column:rows;not null;default:1"`
	Position    int            `gorm:"column:position;not null;uniqueIndex:cards_profile_position_idx,priority:2"`
	Data        types.CardData `gorm:"column:data;type:jsonb"`
	ClickCount  int            `gorm:"column:click_count;not null;default:0"`
	AccentColor *string        `gorm:"column:accent_color"`
	AssetID     *uuid.UUID     `gorm:"column:asset_id;type:uuid"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
