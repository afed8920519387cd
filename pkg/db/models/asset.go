package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset records one uploaded object in the storage bucket.
type Asset struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Bucket      string    `gorm:"column:bucket;not null;uniqueIndex:assets_bucket_key_idx,priority:1"`
	Key         string    `gorm:"column:key;not null;uniqueIndex:assets_bucket_key_idx,priority:2"`
	ContentType string    `gorm:"column:content_type;not null"`
	URL         string    `gorm:"column:url;not null"`
	SizeBytes   int64     `gorm:"column:size_bytes;not null"`
	Width       *int      `gorm:"column:width"`
	Height      *int      `gorm:"column:height"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
