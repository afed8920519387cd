package onboarding

import (
	"context"
	"testing"

	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardService struct {
	created []cards.CreateCardInput
	nextPos int
}

func (f *fakeCardService) List(_ context.Context, _ uuid.UUID) ([]cards.CardDTO, error) {
	out := make([]cards.CardDTO, 0, len(f.created))
	for i, input := range f.created {
		dto := cards.CardDTO{
			ID:       uuid.New(),
			Type:     input.Type,
			Title:    input.Title,
			Subtitle: input.Subtitle,
			URL:      input.URL,
			Icon:     input.Icon,
			Cols:     input.Cols,
			Rows:     input.Rows,
			Position: i + 1,
		}
		out = append(out, dto)
	}
	return out, nil
}

func (f *fakeCardService) Create(_ context.Context, _ uuid.UUID, input cards.CreateCardInput) (cards.CardDTO, error) {
	f.nextPos++
	f.created = append(f.created, input)
	return cards.CardDTO{ID: uuid.New(), Title: input.Title, Position: f.nextPos}, nil
}

type fakeProfileService struct {
	profile   profiles.ProfileDTO
	published bool
}

func (f *fakeProfileService) Get(_ context.Context, _ uuid.UUID) (profiles.ProfileDTO, error) {
	return f.profile, nil
}

func (f *fakeProfileService) Update(_ context.Context, _ uuid.UUID, input profiles.UpdateProfileInput) (profiles.ProfileDTO, error) {
	if input.DisplayName != nil {
		f.profile.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		f.profile.Bio = input.Bio
	}
	return f.profile, nil
}

func (f *fakeProfileService) Publish(_ context.Context, _ uuid.UUID) (profiles.ProfileDTO, error) {
	f.published = true
	f.profile.IsPublic = true
	return f.profile, nil
}

func newTestOnboarding(t *testing.T) (Service, *fakeCardService, *fakeProfileService) {
	t.Helper()
	cardSvc := &fakeCardService{}
	profileSvc := &fakeProfileService{
		profile: profiles.ProfileDTO{ID: uuid.New(), Handle: "jordan", DisplayName: "Jordan"},
	}
	svc, err := NewService(ServiceParams{Cards: cardSvc, Profiles: profileSvc})
	require.NoError(t, err)
	return svc, cardSvc, profileSvc
}

func TestCompleteSeedsStarterCardsAndPublishes(t *testing.T) {
	svc, cardSvc, profileSvc := newTestOnboarding(t)

	result, err := svc.Complete(context.Background(), profileSvc.profile.ID, CompleteInput{})
	require.NoError(t, err)

	require.Len(t, cardSvc.created, 2)
	hero := cardSvc.created[0]
	assert.Equal(t, enums.CardTypeText, hero.Type)
	assert.Equal(t, "Hi, I'm Jordan", hero.Title)
	assert.Equal(t, 6, hero.Cols)
	assert.Equal(t, 2, hero.Rows)
	assert.Equal(t, "About", cardSvc.created[1].Title)

	assert.True(t, profileSvc.published)
	assert.True(t, result.Profile.IsPublic)
	assert.Empty(t, result.SkippedLinks)
}

func TestCompleteTurnsLinksIntoTiles(t *testing.T) {
	svc, cardSvc, profileSvc := newTestOnboarding(t)

	result, err := svc.Complete(context.Background(), profileSvc.profile.ID, CompleteInput{
		Links: []string{"ig @jordan", "https://example.com/blog", "not a link at all"},
	})
	require.NoError(t, err)

	// Two starter cards plus two recognized links.
	require.Len(t, cardSvc.created, 4)

	igCard := cardSvc.created[2]
	assert.Equal(t, enums.CardTypeSocial, igCard.Type)
	require.NotNil(t, igCard.URL)
	assert.Equal(t, "https://instagram.com/jordan", *igCard.URL)
	assert.Equal(t, "Instagram @jordan", igCard.Title)

	linkCard := cardSvc.created[3]
	assert.Equal(t, enums.CardTypeLink, linkCard.Type)
	require.NotNil(t, linkCard.URL)
	assert.Equal(t, "https://example.com/blog", *linkCard.URL)

	assert.Equal(t, []string{"not a link at all"}, result.SkippedLinks)
}

func TestCompleteSkipsStarterCardsWhenPageHasContent(t *testing.T) {
	svc, cardSvc, profileSvc := newTestOnboarding(t)
	cardSvc.created = append(cardSvc.created, cards.CreateCardInput{
		Type:  enums.CardTypeText,
		Title: "existing",
	})
	cardSvc.nextPos = 1

	_, err := svc.Complete(context.Background(), profileSvc.profile.ID, CompleteInput{})
	require.NoError(t, err)

	// No hero/about added on top of existing content.
	require.Len(t, cardSvc.created, 1)
	assert.Equal(t, "existing", cardSvc.created[0].Title)
}

func TestCompleteAppliesDisplayNameBeforeSeeding(t *testing.T) {
	svc, cardSvc, profileSvc := newTestOnboarding(t)

	name := "Jordan Rivers"
	_, err := svc.Complete(context.Background(), profileSvc.profile.ID, CompleteInput{
		DisplayName: &name,
	})
	require.NoError(t, err)

	require.NotEmpty(t, cardSvc.created)
	assert.Equal(t, "Hi, I'm Jordan Rivers", cardSvc.created[0].Title)
}

func TestCompleteCapsSeededLinks(t *testing.T) {
	svc, cardSvc, profileSvc := newTestOnboarding(t)

	links := []string{
		"ig @a", "tw @b", "gh @c", "yt @d", "tt @e", "fb @f", "bsky @g",
	}
	result, err := svc.Complete(context.Background(), profileSvc.profile.ID, CompleteInput{
		Links: links,
	})
	require.NoError(t, err)

	// Starter pair plus the first five links; the overflow is reported back.
	require.Len(t, cardSvc.created, 7)
	assert.Equal(t, []string{"fb @f", "bsky @g"}, result.SkippedLinks)
}
