package profiles

import (
	"context"
	"strings"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profile repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a profile row.
func (r *Repository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByID loads a profile by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).
		Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserID loads the user's single profile.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).
		Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByHandle loads a profile by its lowercased handle, cards preloaded in
// render order.
func (r *Repository) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("handle = ?", strings.ToLower(strings.TrimSpace(handle))).
		First(&profile).
		Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// HandleTaken reports whether another profile already owns the handle.
func (r *Repository) HandleTaken(ctx context.Context, handle string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("handle = ?", handle)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFields applies a partial column update to one profile.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

// IncrementClicks adds n to the profile's aggregate click counter.
func (r *Repository) IncrementClicks(ctx context.Context, id uuid.UUID, n int64) error {
	if n <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("clicks", gorm.Expr("clicks + ?", n)).
		Error
}
