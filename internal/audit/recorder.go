package audit

import (
	"context"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder writes a best-effort audit trail. Failures are logged and
// swallowed; no caller path depends on an audit row landing.
type Recorder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewRecorder constructs an audit recorder bound to the provided gorm DB.
func NewRecorder(db *gorm.DB, logg *logger.Logger) *Recorder {
	return &Recorder{db: db, logg: logg}
}

// Record appends one audit entry.
func (r *Recorder) Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID string) {
	if r == nil || r.db == nil || action == "" {
		return
	}

	entry := models.AuditLog{
		ID:     uuid.New(),
		UserID: userID,
		Action: action,
	}
	if entity != "" {
		entry.Entity = &entity
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil && r.logg != nil {
		r.logg.Warn(r.logg.WithField(ctx, "audit_action", action), "audit write failed")
	}
}

// ListRecent returns the newest entries for an account, capped at limit.
func (r *Recorder) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).
		Error
	return entries, err
}
