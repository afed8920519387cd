package enums

import "fmt"

// LayoutTemplate identifies a named full-grid relayout rule.
type LayoutTemplate string

const (
	LayoutTemplateCardsOnly   LayoutTemplate = "cards_only"
	LayoutTemplateHero2       LayoutTemplate = "hero_2"
	LayoutTemplateHeroMasonry LayoutTemplate = "hero_masonry"
)

var validLayoutTemplates = []LayoutTemplate{
	LayoutTemplateCardsOnly,
	LayoutTemplateHero2,
	LayoutTemplateHeroMasonry,
}

// String implements fmt.Stringer.
func (t LayoutTemplate) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known LayoutTemplate.
func (t LayoutTemplate) IsValid() bool {
	for _, candidate := range validLayoutTemplates {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLayoutTemplate converts raw input into a LayoutTemplate.
func ParseLayoutTemplate(value string) (LayoutTemplate, error) {
	for _, candidate := range validLayoutTemplates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid layout template %q", value)
}
