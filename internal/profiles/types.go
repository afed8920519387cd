package profiles

import (
	"time"

	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/themes"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
)

// ProfileDTO is the owner-facing shape of a profile.
type ProfileDTO struct {
	ID          uuid.UUID   `json:"id"`
	Handle      string      `json:"handle"`
	DisplayName string      `json:"displayName"`
	Bio         *string     `json:"bio,omitempty"`
	Theme       types.Theme `json:"theme"`
	AvatarURL   *string     `json:"avatarUrl,omitempty"`
	BannerURL   *string     `json:"bannerUrl,omitempty"`
	Clicks      int         `json:"clicks"`
	IsPublic    bool        `json:"isPublic"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PublicPageDTO is the anonymous render payload for a published page.
type PublicPageDTO struct {
	Handle      string          `json:"handle"`
	DisplayName string          `json:"displayName"`
	Bio         *string         `json:"bio,omitempty"`
	Theme       types.Theme     `json:"theme"`
	AvatarURL   *string         `json:"avatarUrl,omitempty"`
	BannerURL   *string         `json:"bannerUrl,omitempty"`
	Cards       []cards.CardDTO `json:"cards"`
}

// UpdateProfileInput is a partial owner update; nil fields are untouched.
type UpdateProfileInput struct {
	Handle      *string
	DisplayName *string
	Bio         *string
}

// ThemeInput selects a preset and optional color overrides.
type ThemeInput struct {
	Preset     string
	Accent     *string
	Background *string
}

func toDTO(profile *models.Profile, avatarURL, bannerURL *string) ProfileDTO {
	return ProfileDTO{
		ID:          profile.ID,
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Theme:       themes.Resolve(profile.Theme),
		AvatarURL:   avatarURL,
		BannerURL:   bannerURL,
		Clicks:      profile.Clicks,
		IsPublic:    profile.IsPublic,
		PublishedAt: profile.PublishedAt,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}
