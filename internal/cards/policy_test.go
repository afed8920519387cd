package cards

import (
	"testing"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "expected field details")
	assert.Contains(t, details, field)
}

func TestValidateCreateLinkRequiresURL(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{Type: enums.CardTypeLink, Title: "My site"}

	err := policy.ValidateCreate(&input)
	requireFieldError(t, err, "url")
}

func TestValidateCreateTitleBounds(t *testing.T) {
	policy := NewPolicy(nil)

	input := CreateCardInput{Type: enums.CardTypeText, Title: "   "}
	requireFieldError(t, policy.ValidateCreate(&input), "title")

	long := make([]rune, 81)
	for i := range long {
		long[i] = 'a'
	}
	input = CreateCardInput{Type: enums.CardTypeText, Title: string(long)}
	requireFieldError(t, policy.ValidateCreate(&input), "title")
}

func TestValidateCreateSpanBounds(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{Type: enums.CardTypeText, Title: "About", Cols: 7}
	requireFieldError(t, policy.ValidateCreate(&input), "cols")

	input = CreateCardInput{Type: enums.CardTypeText, Title: "About", Rows: 4}
	requireFieldError(t, policy.ValidateCreate(&input), "rows")
}

func TestValidateCreateGalleryCapsImages(t *testing.T) {
	policy := NewPolicy(nil)

	images := make([]types.GalleryImage, 8)
	for i := range images {
		images[i] = types.GalleryImage{AssetID: uuid.New(), URL: "https://cdn.example.com/img.png"}
	}
	input := CreateCardInput{
		Type:  enums.CardTypeGallery,
		Title: "Shots",
		Data:  types.CardData{Images: images},
	}

	require.NoError(t, policy.ValidateCreate(&input))
	assert.Len(t, input.Data.Images, 6)
	assert.GreaterOrEqual(t, input.Cols, 3)
	assert.GreaterOrEqual(t, input.Rows, 2)
}

func TestValidateCreateGalleryRequiresImages(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{Type: enums.CardTypeGallery, Title: "Shots"}
	requireFieldError(t, policy.ValidateCreate(&input), "data.images")
}

func TestValidateCreateMapExtractsCoordinates(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:  enums.CardTypeMap,
		Title: "Studio",
		URL:   strPtr("https://maps.google.com/?q=51.5007,-0.1246"),
	}

	require.NoError(t, policy.ValidateCreate(&input))
	require.NotNil(t, input.Data.Location)
	assert.Equal(t, 51.5007, input.Data.Location.Lat)
	assert.Equal(t, -0.1246, input.Data.Location.Lng)
}

func TestValidateCreateMapRejectsUnparseableURL(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:  enums.CardTypeMap,
		Title: "Studio",
		URL:   strPtr("https://maps.google.com/?q=Somewhere+Nice"),
	}
	requireFieldError(t, policy.ValidateCreate(&input), "url")
}

func TestValidateCreateContactStoresNoFallbackURL(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{Type: enums.CardTypeContact, Title: "Say hi"}

	// The mailto fallback belongs to the public render, not the row.
	require.NoError(t, policy.ValidateCreate(&input))
	assert.Nil(t, input.URL)
}

func TestValidateCreateContactKeepsExplicitURL(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:  enums.CardTypeContact,
		Title: "Say hi",
		URL:   strPtr("mailto:booking@example.com"),
	}

	require.NoError(t, policy.ValidateCreate(&input))
	require.NotNil(t, input.URL)
	assert.Equal(t, "mailto:booking@example.com", *input.URL)
}

func TestValidateCreateNormalizesAccentColor(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:        enums.CardTypeText,
		Title:       "About",
		AccentColor: strPtr("FF8800"),
	}

	require.NoError(t, policy.ValidateCreate(&input))
	require.NotNil(t, input.AccentColor)
	assert.Equal(t, "#ff8800", *input.AccentColor)
}

func TestValidateCreateRejectsBadAccentColor(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:        enums.CardTypeText,
		Title:       "About",
		AccentColor: strPtr("#zzz"),
	}
	requireFieldError(t, policy.ValidateCreate(&input), "accentColor")
}

func TestValidateCreateTextDropsURL(t *testing.T) {
	policy := NewPolicy(nil)
	input := CreateCardInput{
		Type:  enums.CardTypeText,
		Title: "About",
		URL:   strPtr("https://example.com"),
	}

	require.NoError(t, policy.ValidateCreate(&input))
	assert.Nil(t, input.URL)
}

func TestValidateUpdateClampsSpan(t *testing.T) {
	policy := NewPolicy(nil)
	cols := 2
	rows := 1
	input := UpdateCardInput{Cols: &cols, Rows: &rows}

	require.NoError(t, policy.ValidateUpdate(&models.Card{Type: enums.CardTypeGallery}, &input))
	assert.Equal(t, 3, *input.Cols)
	assert.Equal(t, 2, *input.Rows)
}

func TestValidateUpdateSubtitleBound(t *testing.T) {
	policy := NewPolicy(nil)
	long := make([]rune, 121)
	for i := range long {
		long[i] = 'b'
	}
	subtitle := string(long)
	input := UpdateCardInput{Subtitle: &subtitle}
	requireFieldError(t, policy.ValidateUpdate(&models.Card{Type: enums.CardTypeText}, &input), "subtitle")
}

func TestValidateUpdateURLOnlyRefreshesMapCoordinates(t *testing.T) {
	policy := NewPolicy(nil)
	card := &models.Card{
		Type: enums.CardTypeMap,
		URL:  strPtr("https://maps.google.com/?q=51.5007,-0.1246"),
		Data: types.CardData{Location: &types.LatLng{Lat: 51.5007, Lng: -0.1246}},
	}
	input := UpdateCardInput{URL: strPtr("https://maps.google.com/?q=40.7484,-73.9857")}

	require.NoError(t, policy.ValidateUpdate(card, &input))
	require.NotNil(t, input.Data, "url patch must carry the reparsed coordinates")
	require.NotNil(t, input.Data.Location)
	assert.Equal(t, 40.7484, input.Data.Location.Lat)
	assert.Equal(t, -73.9857, input.Data.Location.Lng)
}

func TestValidateUpdateDataOnlyKeepsStoredURL(t *testing.T) {
	policy := NewPolicy(nil)
	card := &models.Card{
		Type: enums.CardTypeLink,
		URL:  strPtr("https://example.com/blog"),
	}
	input := UpdateCardInput{Data: &types.CardData{Recipient: strPtr("me@example.com")}}

	// The stored url satisfies the url requirement; the patch must not be
	// rejected for omitting it, and must not overwrite it either.
	require.NoError(t, policy.ValidateUpdate(card, &input))
	assert.Nil(t, input.URL)
	require.NotNil(t, card.URL)
	assert.Equal(t, "https://example.com/blog", *card.URL)
}
