package cards

import (
	"context"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates card persistence. All position writes go through
// it so the (profile_id, position) unique index is the only ordering
// authority.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a card repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByProfile returns the profile's cards ordered by ascending position.
func (r *Repository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("position ASC").
		Find(&cards).
		Error
	return cards, err
}

// FindByID loads one card scoped to its profile.
func (r *Repository) FindByID(ctx context.Context, profileID, cardID uuid.UUID) (models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, cardID).
		First(&card).
		Error
	return card, err
}

// MaxPosition returns the highest position in use, 0 for an empty grid.
func (r *Repository) MaxPosition(ctx context.Context, profileID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).
		Error
	return max, err
}

// Create inserts a card row.
func (r *Repository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// UpdateFields applies a partial column update to one card.
func (r *Repository) UpdateFields(ctx context.Context, cardID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", cardID).
		Updates(fields).
		Error
}

// UpdatePosition moves one card to the given position.
func (r *Repository) UpdatePosition(ctx context.Context, cardID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", cardID).
		Update("position", position).
		Error
}

// UpdatePlacement writes a card's final span and position in one statement.
func (r *Repository) UpdatePlacement(ctx context.Context, cardID uuid.UUID, cols, rows, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", cardID).
		Updates(map[string]any{
			"cols":     cols,
			"rows":     rows,
			"position": position,
		}).
		Error
}

// Delete removes the card if it exists and reports how many rows went away.
// Remaining positions keep their gaps.
func (r *Repository) Delete(ctx context.Context, profileID, cardID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, cardID).
		Delete(&models.Card{})
	return result.RowsAffected, result.Error
}

// ProfileIDByCard resolves the owning profile for a card.
func (r *Repository) ProfileIDByCard(ctx context.Context, cardID uuid.UUID) (uuid.UUID, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Select("profile_id").
		Where("id = ?", cardID).
		First(&card).
		Error
	if err != nil {
		return uuid.Nil, err
	}
	return card.ProfileID, nil
}

// IncrementClicks adds n to a card's click counter. Counters only grow.
func (r *Repository) IncrementClicks(ctx context.Context, cardID uuid.UUID, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("id = ?", cardID).
		Update("click_count", gorm.Expr("click_count + ?", n))
	return result.RowsAffected, result.Error
}
