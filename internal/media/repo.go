package media

import (
	"context"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates asset persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an asset repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts an asset row.
func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// FindByID loads an asset by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&asset).
		Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindByIDs loads multiple assets at once, keyed by ID.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Asset, error) {
	out := make(map[uuid.UUID]models.Asset, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var assets []models.Asset
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&assets).
		Error
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		out[asset.ID] = asset
	}
	return out, nil
}

// Delete removes an asset row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Asset{}).
		Error
}
