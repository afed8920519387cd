package enums

import "fmt"

// ReorderDirection selects which neighbor a single-step reorder targets.
type ReorderDirection string

const (
	// ReorderDirectionUp moves the card toward lower positions.
	ReorderDirectionUp ReorderDirection = "up"
	// ReorderDirectionDown moves the card toward higher positions.
	ReorderDirectionDown ReorderDirection = "down"
)

var validReorderDirections = []ReorderDirection{
	ReorderDirectionUp,
	ReorderDirectionDown,
}

// String implements fmt.Stringer.
func (d ReorderDirection) String() string {
	return string(d)
}

// IsValid reports whether the value matches a known ReorderDirection.
func (d ReorderDirection) IsValid() bool {
	for _, candidate := range validReorderDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseReorderDirection converts raw input into a ReorderDirection.
func ParseReorderDirection(value string) (ReorderDirection, error) {
	for _, candidate := range validReorderDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reorder direction %q", value)
}
