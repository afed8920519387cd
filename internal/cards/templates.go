package cards

import "github.com/bentolink/bentolink-backend/pkg/enums"

const (
	minCols = 1
	maxCols = 6
	minRows = 1
	maxRows = 3

	galleryMinCols = 3
	galleryMinRows = 2

	defaultCols = 3
	defaultRows = 1
)

// templateDims returns the grid span a template assigns to the card at the
// given index in the ordered list.
func templateDims(template enums.LayoutTemplate, index int) (cols, rows int) {
	switch template {
	case enums.LayoutTemplateHero2:
		if index == 0 {
			return 6, 2
		}
		return 3, 1

	case enums.LayoutTemplateHeroMasonry:
		if index == 0 {
			return 6, 2
		}
		// Odd indexes get the tall tile, even the short one.
		if index%2 == 1 {
			return 3, 2
		}
		return 3, 1

	default:
		// cards_only
		return 3, 1
	}
}

// clampDims bounds a span to the grid and applies the gallery floor.
func clampDims(cardType enums.CardType, cols, rows int) (int, int) {
	if cols == 0 {
		cols = defaultCols
	}
	if rows == 0 {
		rows = defaultRows
	}
	cols = clamp(cols, minCols, maxCols)
	rows = clamp(rows, minRows, maxRows)
	if cardType == enums.CardTypeGallery {
		if cols < galleryMinCols {
			cols = galleryMinCols
		}
		if rows < galleryMinRows {
			rows = galleryMinRows
		}
	}
	return cols, rows
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
