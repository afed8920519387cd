package enums

import "fmt"

// ThemePreset names a built-in palette/typography bundle.
type ThemePreset string

const (
	ThemePresetMinimal ThemePreset = "minimal"
	ThemePresetStudio  ThemePreset = "studio"
	ThemePresetNeon    ThemePreset = "neon"
	ThemePresetPastel  ThemePreset = "pastel"
)

var validThemePresets = []ThemePreset{
	ThemePresetMinimal,
	ThemePresetStudio,
	ThemePresetNeon,
	ThemePresetPastel,
}

// String implements fmt.Stringer.
func (p ThemePreset) String() string {
	return string(p)
}

// IsValid reports whether the value matches a known ThemePreset.
func (p ThemePreset) IsValid() bool {
	for _, candidate := range validThemePresets {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseThemePreset converts raw input into a ThemePreset.
func ParseThemePreset(value string) (ThemePreset, error) {
	for _, candidate := range validThemePresets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme preset %q", value)
}
