package themes

import (
	"strings"

	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/bentolink/bentolink-backend/pkg/types"
)

// DefaultPreset is applied to profiles that never picked a theme.
const DefaultPreset = enums.ThemePresetMinimal

var palettes = map[enums.ThemePreset]types.Theme{
	enums.ThemePresetMinimal: {
		Preset:     enums.ThemePresetMinimal,
		Accent:     "#2563eb",
		Background: "#0f172a",
	},
	enums.ThemePresetStudio: {
		Preset:     enums.ThemePresetStudio,
		Accent:     "#22c55e",
		Background: "#0b1020",
	},
	enums.ThemePresetNeon: {
		Preset:     enums.ThemePresetNeon,
		Accent:     "#a855f7",
		Background: "#0a0a0f",
	},
	enums.ThemePresetPastel: {
		Preset:     enums.ThemePresetPastel,
		Accent:     "#fb7185",
		Background: "#111827",
	},
}

// FromPreset returns the full palette for a preset, falling back to the
// default preset for unknown values.
func FromPreset(preset enums.ThemePreset) types.Theme {
	if theme, ok := palettes[preset]; ok {
		return theme
	}
	return palettes[DefaultPreset]
}

// Resolve fills in whatever a stored theme is missing. A stored accent or
// background always wins over the preset palette.
func Resolve(stored types.Theme) types.Theme {
	theme := FromPreset(stored.Preset)
	if stored.Accent != "" {
		theme.Accent = NormalizeColor(stored.Accent)
	}
	if stored.Background != "" {
		theme.Background = NormalizeColor(stored.Background)
	}
	return theme
}

// NormalizeColor ensures hex colors carry a leading # and lowercase digits.
func NormalizeColor(color string) string {
	trimmed := strings.TrimSpace(color)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	return strings.ToLower(trimmed)
}
