package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/bentolink/bentolink-backend/pkg/enums"
)

// Theme is the profile theme selection persisted as JSONB. Older rows may be
// missing the preset, so readers resolve defaults via themes.Resolve.
type Theme struct {
	Preset     enums.ThemePreset `json:"preset,omitempty"`
	Accent     string            `json:"accent,omitempty"`
	Background string            `json:"background,omitempty"`
}

// Value marshals the theme into JSON for Postgres.
func (t Theme) Value() (driver.Value, error) {
	buf, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the theme.
func (t *Theme) Scan(value interface{}) error {
	if value == nil {
		*t = Theme{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("theme: unsupported scan type %T", value)
	}

	var result Theme
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*t = result
	return nil
}
