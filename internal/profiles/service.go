package profiles

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/themes"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var handleRe = regexp.MustCompile(`^[a-z0-9_-]{3,25}$`)

// NormalizeHandle lowercases and validates a requested handle.
func NormalizeHandle(raw string) (string, error) {
	handle := strings.ToLower(strings.TrimSpace(raw))
	if !handleRe.MatchString(handle) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid handle").
			WithDetails(map[string]string{"handle": "must be 3-25 chars of a-z, 0-9, _ or -"})
	}
	return handle, nil
}

type assetFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
}

type auditRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID string)
}

// ownerEmailFinder resolves the page owner's account for the contact card
// mailto fallback. Satisfied by *users.Repository.
type ownerEmailFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams groups dependencies for the profile service.
type ServiceParams struct {
	Repo   *Repository
	Assets assetFinder
	Users  ownerEmailFinder
	Audit  auditRecorder
}

// Service exposes owner-side profile management and the public page read.
type Service interface {
	Get(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error)
	Update(ctx context.Context, profileID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error)
	SetTheme(ctx context.Context, profileID uuid.UUID, input ThemeInput) (ProfileDTO, error)
	Publish(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error)
	Unpublish(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error)
	SetAvatar(ctx context.Context, profileID, assetID uuid.UUID) (ProfileDTO, error)
	SetBanner(ctx context.Context, profileID, assetID uuid.UUID) (ProfileDTO, error)
	PublicPage(ctx context.Context, handle string) (PublicPageDTO, error)
}

type service struct {
	repo   *Repository
	assets assetFinder
	users  ownerEmailFinder
	audit  auditRecorder
}

// NewService builds a profile service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repo is required")
	}
	return &service{
		repo:   params.Repo,
		assets: params.Assets,
		users:  params.Users,
		audit:  params.Audit,
	}, nil
}

func (s *service) Get(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return ProfileDTO{}, err
	}
	return s.buildDTO(ctx, profile), nil
}

func (s *service) Update(ctx context.Context, profileID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return ProfileDTO{}, err
	}

	fields := map[string]any{}

	if input.Handle != nil {
		handle, err := NormalizeHandle(*input.Handle)
		if err != nil {
			return ProfileDTO{}, err
		}
		taken, err := s.repo.HandleTaken(ctx, handle, profileID)
		if err != nil {
			return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check handle")
		}
		if taken {
			return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "handle already in use")
		}
		fields["handle"] = handle
		profile.Handle = handle
	}
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" || len([]rune(name)) > 60 {
			return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid display name").
				WithDetails(map[string]string{"displayName": "must be 1-60 characters"})
		}
		fields["display_name"] = name
		profile.DisplayName = name
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if len([]rune(bio)) > 240 {
			return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid bio").
				WithDetails(map[string]string{"bio": "must be at most 240 characters"})
		}
		fields["bio"] = &bio
		profile.Bio = &bio
	}

	if err := s.repo.UpdateFields(ctx, profileID, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "handle already in use")
		}
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}

	s.record(ctx, "profile.update", profileID)
	return s.buildDTO(ctx, profile), nil
}

func (s *service) SetTheme(ctx context.Context, profileID uuid.UUID, input ThemeInput) (ProfileDTO, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return ProfileDTO{}, err
	}

	preset, err := enums.ParseThemePreset(strings.TrimSpace(input.Preset))
	if err != nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid theme preset").
			WithDetails(map[string]string{"preset": err.Error()})
	}

	theme := types.Theme{Preset: preset}
	if input.Accent != nil {
		theme.Accent = themes.NormalizeColor(*input.Accent)
	}
	if input.Background != nil {
		theme.Background = themes.NormalizeColor(*input.Background)
	}

	if err := s.repo.UpdateFields(ctx, profileID, map[string]any{"theme": theme}); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update theme")
	}
	profile.Theme = theme

	s.record(ctx, "profile.set_theme", profileID)
	return s.buildDTO(ctx, profile), nil
}

func (s *service) Publish(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error) {
	return s.setPublication(ctx, profileID, true)
}

func (s *service) Unpublish(ctx context.Context, profileID uuid.UUID) (ProfileDTO, error) {
	return s.setPublication(ctx, profileID, false)
}

func (s *service) SetAvatar(ctx context.Context, profileID, assetID uuid.UUID) (ProfileDTO, error) {
	return s.setImage(ctx, profileID, assetID, "avatar_asset_id")
}

func (s *service) SetBanner(ctx context.Context, profileID, assetID uuid.UUID) (ProfileDTO, error) {
	return s.setImage(ctx, profileID, assetID, "banner_asset_id")
}

// PublicPage serves the anonymous render payload. Unpublished or hidden
// profiles are indistinguishable from missing ones.
func (s *service) PublicPage(ctx context.Context, handle string) (PublicPageDTO, error) {
	profile, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PublicPageDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return PublicPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	if !profile.IsPublic || profile.PublishedAt == nil {
		return PublicPageDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
	}

	avatarURL, bannerURL := s.resolveImages(ctx, profile)
	ownerEmail := s.ownerEmail(ctx, profile.UserID)
	page := PublicPageDTO{
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Theme:       themes.Resolve(profile.Theme),
		AvatarURL:   avatarURL,
		BannerURL:   bannerURL,
		Cards:       make([]cards.CardDTO, 0, len(profile.Cards)),
	}
	for _, card := range profile.Cards {
		page.Cards = append(page.Cards, cards.PublicDTO(card, ownerEmail))
	}
	return page, nil
}

func (s *service) setPublication(ctx context.Context, profileID uuid.UUID, publish bool) (ProfileDTO, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return ProfileDTO{}, err
	}

	fields := map[string]any{"is_public": publish}
	if publish {
		now := time.Now().UTC()
		fields["published_at"] = &now
		profile.PublishedAt = &now
	} else {
		fields["published_at"] = nil
		profile.PublishedAt = nil
	}
	profile.IsPublic = publish

	if err := s.repo.UpdateFields(ctx, profileID, fields); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update publication state")
	}

	action := "profile.publish"
	if !publish {
		action = "profile.unpublish"
	}
	s.record(ctx, action, profileID)
	return s.buildDTO(ctx, profile), nil
}

func (s *service) setImage(ctx context.Context, profileID, assetID uuid.UUID, column string) (ProfileDTO, error) {
	profile, err := s.load(ctx, profileID)
	if err != nil {
		return ProfileDTO{}, err
	}
	if assetID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "asset id is required")
	}
	if s.assets != nil {
		if _, err := s.assets.FindByID(ctx, assetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
			}
			return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset")
		}
	}

	if err := s.repo.UpdateFields(ctx, profileID, map[string]any{column: assetID}); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile image")
	}
	if column == "avatar_asset_id" {
		profile.AvatarAssetID = &assetID
	} else {
		profile.BannerAssetID = &assetID
	}

	s.record(ctx, "profile.set_image", profileID)
	return s.buildDTO(ctx, profile), nil
}

func (s *service) load(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	if profileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required")
	}
	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func (s *service) buildDTO(ctx context.Context, profile *models.Profile) ProfileDTO {
	avatarURL, bannerURL := s.resolveImages(ctx, profile)
	return toDTO(profile, avatarURL, bannerURL)
}

func (s *service) resolveImages(ctx context.Context, profile *models.Profile) (*string, *string) {
	return s.assetURL(ctx, profile.AvatarAssetID), s.assetURL(ctx, profile.BannerAssetID)
}

// ownerEmail is best effort; a contact card without a recipient simply
// renders without a mailto link when the lookup fails.
func (s *service) ownerEmail(ctx context.Context, userID uuid.UUID) string {
	if s.users == nil {
		return ""
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Email
}

func (s *service) assetURL(ctx context.Context, assetID *uuid.UUID) *string {
	if s.assets == nil || assetID == nil {
		return nil
	}
	asset, err := s.assets.FindByID(ctx, *assetID)
	if err != nil {
		return nil
	}
	return &asset.URL
}

func (s *service) record(ctx context.Context, action string, profileID uuid.UUID) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, nil, action, "profile", profileID.String())
}
