package cards

import (
	"testing"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicDTOContactFallsBackToOwnerEmail(t *testing.T) {
	card := models.Card{ID: uuid.New(), Type: enums.CardTypeContact, Title: "Say hi"}

	dto := PublicDTO(card, "owner@example.com")
	require.NotNil(t, dto.URL)
	assert.Equal(t, "mailto:owner@example.com", *dto.URL)

	// The fallback follows the owner's current email, nothing is stored.
	dto = PublicDTO(card, "new@example.com")
	require.NotNil(t, dto.URL)
	assert.Equal(t, "mailto:new@example.com", *dto.URL)
}

func TestPublicDTOContactPrefersRecipient(t *testing.T) {
	card := models.Card{
		ID:    uuid.New(),
		Type:  enums.CardTypeContact,
		Title: "Bookings",
		Data:  types.CardData{Recipient: strPtr("booking@example.com")},
	}

	dto := PublicDTO(card, "owner@example.com")
	require.NotNil(t, dto.URL)
	assert.Equal(t, "mailto:booking@example.com", *dto.URL)
}

func TestPublicDTOContactKeepsExplicitURL(t *testing.T) {
	card := models.Card{
		ID:    uuid.New(),
		Type:  enums.CardTypeContact,
		Title: "Say hi",
		URL:   strPtr("https://example.com/contact"),
	}

	dto := PublicDTO(card, "owner@example.com")
	require.NotNil(t, dto.URL)
	assert.Equal(t, "https://example.com/contact", *dto.URL)
}

func TestPublicDTOContactWithoutAnyAddress(t *testing.T) {
	card := models.Card{ID: uuid.New(), Type: enums.CardTypeContact, Title: "Say hi"}

	dto := PublicDTO(card, "")
	assert.Nil(t, dto.URL)
}

func TestPublicDTOMapPreview(t *testing.T) {
	card := models.Card{
		ID:    uuid.New(),
		Type:  enums.CardTypeMap,
		Title: "Studio",
		URL:   strPtr("https://maps.google.com/?q=51.5007,-0.1246"),
		Data:  types.CardData{Location: &types.LatLng{Lat: 51.5007, Lng: -0.1246}},
	}

	dto := PublicDTO(card, "owner@example.com")
	require.NotNil(t, dto.MapPreviewURL)
	assert.Contains(t, *dto.MapPreviewURL, "51.5007")
}
