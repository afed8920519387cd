package onboarding

import (
	"context"
	"fmt"
	"strings"

	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/social"
	"github.com/google/uuid"
)

const maxSeedLinks = 5

type cardService interface {
	List(ctx context.Context, profileID uuid.UUID) ([]cards.CardDTO, error)
	Create(ctx context.Context, profileID uuid.UUID, input cards.CreateCardInput) (cards.CardDTO, error)
}

type profileService interface {
	Get(ctx context.Context, profileID uuid.UUID) (profiles.ProfileDTO, error)
	Update(ctx context.Context, profileID uuid.UUID, input profiles.UpdateProfileInput) (profiles.ProfileDTO, error)
	Publish(ctx context.Context, profileID uuid.UUID) (profiles.ProfileDTO, error)
}

// CompleteInput is the one-shot onboarding payload.
type CompleteInput struct {
	DisplayName *string  `json:"displayName" validate:"omitempty,max=60"`
	Bio         *string  `json:"bio" validate:"omitempty,max=240"`
	Links       []string `json:"links" validate:"omitempty,max=10,dive,max=300"`
}

// Result reports what onboarding produced.
type Result struct {
	Profile      profiles.ProfileDTO `json:"profile"`
	Cards        []cards.CardDTO     `json:"cards"`
	SkippedLinks []string            `json:"skippedLinks,omitempty"`
}

// ServiceParams groups dependencies for the onboarding service.
type ServiceParams struct {
	Cards    cardService
	Profiles profileService
}

// Service turns a fresh profile into a publishable starter page.
type Service interface {
	Complete(ctx context.Context, profileID uuid.UUID, input CompleteInput) (Result, error)
}

type service struct {
	cards    cardService
	profiles profileService
}

// NewService builds an onboarding service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Cards == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card service is required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile service is required")
	}
	return &service{cards: params.Cards, profiles: params.Profiles}, nil
}

// Complete applies the display details, seeds starter cards on an empty
// page, turns recognized links into tiles, and publishes the page.
// Unrecognized link inputs are skipped rather than failing the whole run.
func (s *service) Complete(ctx context.Context, profileID uuid.UUID, input CompleteInput) (Result, error) {
	if input.DisplayName != nil || input.Bio != nil {
		if _, err := s.profiles.Update(ctx, profileID, profiles.UpdateProfileInput{
			DisplayName: input.DisplayName,
			Bio:         input.Bio,
		}); err != nil {
			return Result{}, err
		}
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return Result{}, err
	}

	existing, err := s.cards.List(ctx, profileID)
	if err != nil {
		return Result{}, err
	}

	if len(existing) == 0 {
		if err := s.seedStarterCards(ctx, profileID, profile); err != nil {
			return Result{}, err
		}
	}

	skipped := s.seedLinkCards(ctx, profileID, input.Links)

	published, err := s.profiles.Publish(ctx, profileID)
	if err != nil {
		return Result{}, err
	}

	all, err := s.cards.List(ctx, profileID)
	if err != nil {
		return Result{}, err
	}

	return Result{Profile: published, Cards: all, SkippedLinks: skipped}, nil
}

func (s *service) seedStarterCards(ctx context.Context, profileID uuid.UUID, profile profiles.ProfileDTO) error {
	heroSubtitle := "Welcome to my page"
	if _, err := s.cards.Create(ctx, profileID, cards.CreateCardInput{
		Type:     enums.CardTypeText,
		Title:    fmt.Sprintf("Hi, I'm %s", profile.DisplayName),
		Subtitle: &heroSubtitle,
		Cols:     6,
		Rows:     2,
	}); err != nil {
		return err
	}

	about := "A few words about what I do."
	if profile.Bio != nil && strings.TrimSpace(*profile.Bio) != "" {
		about = strings.TrimSpace(*profile.Bio)
	}
	_, err := s.cards.Create(ctx, profileID, cards.CreateCardInput{
		Type:     enums.CardTypeText,
		Title:    "About",
		Subtitle: &about,
		Cols:     3,
		Rows:     1,
	})
	return err
}

func (s *service) seedLinkCards(ctx context.Context, profileID uuid.UUID, links []string) []string {
	var skipped []string
	created := 0
	for _, raw := range links {
		if created >= maxSeedLinks {
			skipped = append(skipped, raw)
			continue
		}
		normalized, err := social.Normalize(raw)
		if err != nil {
			skipped = append(skipped, raw)
			continue
		}

		cardType := enums.CardTypeLink
		var icon *string
		if normalized.Platform != nil {
			cardType = enums.CardTypeSocial
			name := normalized.Platform.String()
			icon = &name
		}

		if _, err := s.cards.Create(ctx, profileID, cards.CreateCardInput{
			Type:  cardType,
			Title: social.DisplayTitle(normalized),
			URL:   &normalized.URL,
			Icon:  icon,
		}); err != nil {
			skipped = append(skipped, raw)
			continue
		}
		created++
	}
	return skipped
}
