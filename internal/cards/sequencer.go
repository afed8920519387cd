package cards

import (
	"sort"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	"github.com/google/uuid"
)

// Placement is one card's target size and position in a computed arrangement.
type Placement struct {
	ID       uuid.UUID
	Cols     int
	Rows     int
	Position int
}

// Swap describes a single-step exchange between a card and its nearest
// neighbor. TempPosition sits above every live position so the card can
// vacate its slot before the neighbor moves into it.
type Swap struct {
	CardID           uuid.UUID
	NeighborID       uuid.UUID
	CardPosition     int
	NeighborPosition int
	TempPosition     int
}

// NextPosition returns the append slot for a profile's cards: one past the
// highest position in use, or 1 for an empty grid.
func NextPosition(cards []models.Card) int {
	max := 0
	for _, card := range cards {
		if card.Position > max {
			max = card.Position
		}
	}
	return max + 1
}

// PlanSwap computes the position exchange for moving one card a single step.
// The second return is false when the card is missing or has no neighbor on
// the requested side; callers treat that as a silent no-op.
func PlanSwap(cards []models.Card, cardID uuid.UUID, direction enums.ReorderDirection) (Swap, bool) {
	ordered := sortedByPosition(cards)

	idx := -1
	maxPos := 0
	for i, card := range ordered {
		if card.ID == cardID {
			idx = i
		}
		if card.Position > maxPos {
			maxPos = card.Position
		}
	}
	if idx == -1 {
		return Swap{}, false
	}

	neighborIdx := idx + 1
	if direction == enums.ReorderDirectionUp {
		neighborIdx = idx - 1
	}
	if neighborIdx < 0 || neighborIdx >= len(ordered) {
		return Swap{}, false
	}

	card := ordered[idx]
	neighbor := ordered[neighborIdx]
	return Swap{
		CardID:           card.ID,
		NeighborID:       neighbor.ID,
		CardPosition:     card.Position,
		NeighborPosition: neighbor.Position,
		TempPosition:     maxPos + 1,
	}, true
}

// PlanTemplate maps the ordered card list onto a template's grid. Final
// positions are always the contiguous run 1..N regardless of the gaps the
// input carried.
func PlanTemplate(cards []models.Card, template enums.LayoutTemplate) []Placement {
	ordered := sortedByPosition(cards)
	placements := make([]Placement, 0, len(ordered))
	for i, card := range ordered {
		cols, rows := templateDims(template, i)
		cols, rows = clampDims(card.Type, cols, rows)
		placements = append(placements, Placement{
			ID:       card.ID,
			Cols:     cols,
			Rows:     rows,
			Position: i + 1,
		})
	}
	return placements
}

// QuarantinePosition returns the phase-1 slot for the card at index i during
// a bulk relayout. Basing the range on the highest live position keeps it
// above every current slot, and since N distinct positions mean the max is
// at least N it also clears the 1..N targets of phase two.
func QuarantinePosition(maxPosition, index int) int {
	return maxPosition + index + 1
}

func sortedByPosition(cards []models.Card) []models.Card {
	ordered := make([]models.Card, len(cards))
	copy(ordered, cards)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}
