package cards

import (
	"strings"
	"time"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/bentolink/bentolink-backend/pkg/maps"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
)

const defaultMapZoom = 14

// CardDTO is the wire shape for one card.
type CardDTO struct {
	ID          uuid.UUID      `json:"id"`
	Type        enums.CardType `json:"type"`
	Title       string         `json:"title"`
	Subtitle    *string        `json:"subtitle,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	Cols        int            `json:"cols"`
	Rows        int            `json:"rows"`
	Position    int            `json:"position"`
	Data        types.CardData `json:"data,omitempty"`
	ClickCount  int            `json:"clickCount"`
	AccentColor *string        `json:"accentColor,omitempty"`
	// MapPreviewURL is derived at render time for map cards, never stored.
	MapPreviewURL *string   `json:"mapPreviewUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateCardInput carries a validated create payload into the service.
type CreateCardInput struct {
	Type        enums.CardType
	Title       string
	Subtitle    *string
	URL         *string
	Icon        *string
	Cols        int
	Rows        int
	Data        types.CardData
	AccentColor *string
}

// UpdateCardInput carries a partial update; nil fields are untouched.
type UpdateCardInput struct {
	Title       *string
	Subtitle    *string
	URL         *string
	Icon        *string
	Cols        *int
	Rows        *int
	Data        *types.CardData
	AccentColor *string
}

// PublicDTO converts a stored card into its wire shape for the anonymous
// page render. Map cards gain an embeddable preview URL; contact cards
// without an explicit url fall back to a mailto link for the recipient or
// the owner's current email.
func PublicDTO(card models.Card, ownerEmail string) CardDTO {
	dto := toDTO(card)
	if card.Type == enums.CardTypeMap && card.Data.Location != nil {
		preview := maps.StaticPreviewURL(*card.Data.Location, defaultMapZoom)
		dto.MapPreviewURL = &preview
	}
	if card.Type == enums.CardTypeContact && dto.URL == nil {
		if mailto := contactMailto(card.Data.Recipient, ownerEmail); mailto != "" {
			dto.URL = &mailto
		}
	}
	return dto
}

func contactMailto(recipient *string, ownerEmail string) string {
	address := strings.TrimSpace(ownerEmail)
	if recipient != nil && strings.TrimSpace(*recipient) != "" {
		address = strings.TrimSpace(*recipient)
	}
	if address == "" {
		return ""
	}
	return "mailto:" + address
}

func toDTO(card models.Card) CardDTO {
	return CardDTO{
		ID:          card.ID,
		Type:        card.Type,
		Title:       card.Title,
		Subtitle:    card.Subtitle,
		URL:         card.URL,
		Icon:        card.Icon,
		Cols:        card.Cols,
		Rows:        card.Rows,
		Position:    card.Position,
		Data:        card.Data,
		ClickCount:  card.ClickCount,
		AccentColor: card.AccentColor,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

func toDTOs(cards []models.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, card := range cards {
		out = append(out, toDTO(card))
	}
	return out
}
