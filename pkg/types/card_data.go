package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// GalleryImage references one uploaded asset inside a gallery card.
type GalleryImage struct {
	AssetID uuid.UUID `json:"id"`
	URL     string    `json:"url"`
}

// LatLng is a parsed map coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CardData is the per-type structured payload persisted as JSONB. Exactly one
// branch is populated, keyed by the card's type: Images for gallery cards,
// Location for map cards, Recipient for contact cards overriding the owner's
// email. All branches empty is the payload for every other type.
type CardData struct {
	Images    []GalleryImage `json:"images,omitempty"`
	Location  *LatLng        `json:"location,omitempty"`
	Recipient *string        `json:"recipient,omitempty"`
}

// IsZero reports whether no branch carries data.
func (d CardData) IsZero() bool {
	return len(d.Images) == 0 && d.Location == nil && d.Recipient == nil
}

// Value marshals the payload into JSON for Postgres.
func (d CardData) Value() (driver.Value, error) {
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the payload.
func (d *CardData) Scan(value interface{}) error {
	if value == nil {
		*d = CardData{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("card data: unsupported scan type %T", value)
	}

	var result CardData
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*d = result
	return nil
}
