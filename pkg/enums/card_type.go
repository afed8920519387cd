package enums

import "fmt"

// CardType represents the closed set of card content kinds.
type CardType string

const (
	CardTypeLink   CardType = "link"
	CardTypeSocial CardType = "social"
	CardTypeEmail  CardType = "email"
	CardTypeText   CardType = "text"
	// CardTypeImage predates the gallery type and is retained for rows created
	// before galleries existed.
	CardTypeImage   CardType = "image"
	CardTypeVideo   CardType = "video"
	CardTypeMusic   CardType = "music"
	CardTypeMap     CardType = "map"
	CardTypeGallery CardType = "gallery"
	CardTypeContact CardType = "contact"
	CardTypeDivider CardType = "divider"
)

var validCardTypes = []CardType{
	CardTypeLink,
	CardTypeSocial,
	CardTypeEmail,
	CardTypeText,
	CardTypeImage,
	CardTypeVideo,
	CardTypeMusic,
	CardTypeMap,
	CardTypeGallery,
	CardTypeContact,
	CardTypeDivider,
}

// String implements fmt.Stringer.
func (c CardType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CardType.
func (c CardType) IsValid() bool {
	for _, candidate := range validCardTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// RequiresURL reports whether cards of this type must carry a destination URL.
func (c CardType) RequiresURL() bool {
	switch c {
	case CardTypeLink, CardTypeSocial, CardTypeEmail, CardTypeVideo, CardTypeMusic, CardTypeMap:
		return true
	}
	return false
}

// ParseCardType converts raw input into a CardType.
func ParseCardType(value string) (CardType, error) {
	for _, candidate := range validCardTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card type %q", value)
}
