package themes

import (
	"testing"

	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/bentolink/bentolink-backend/pkg/types"
)

func TestFromPresetFallsBack(t *testing.T) {
	theme := FromPreset(enums.ThemePreset("bogus"))
	if theme.Preset != DefaultPreset {
		t.Fatalf("expected default preset, got %s", theme.Preset)
	}
	if theme.Accent != "#2563eb" {
		t.Fatalf("unexpected accent %q", theme.Accent)
	}
}

func TestResolveKeepsOverrides(t *testing.T) {
	theme := Resolve(types.Theme{
		Preset: enums.ThemePresetNeon,
		Accent: "FF00AA",
	})
	if theme.Preset != enums.ThemePresetNeon {
		t.Fatalf("unexpected preset %s", theme.Preset)
	}
	if theme.Accent != "#ff00aa" {
		t.Fatalf("expected normalized accent override, got %q", theme.Accent)
	}
	if theme.Background != "#0a0a0f" {
		t.Fatalf("expected preset background, got %q", theme.Background)
	}
}

func TestNormalizeColor(t *testing.T) {
	if got := NormalizeColor(" 2563EB "); got != "#2563eb" {
		t.Fatalf("unexpected color %q", got)
	}
	if got := NormalizeColor("#abc"); got != "#abc" {
		t.Fatalf("unexpected color %q", got)
	}
	if got := NormalizeColor(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
