package cards

import (
	"context"
	"errors"

	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID string)
}

// ServiceParams groups dependencies for the card service.
type ServiceParams struct {
	Repo   *Repository
	Tx     txRunner
	Policy *Policy
	Audit  auditRecorder
}

// Service is the layout engine's public surface: every card mutation passes
// through it so position writes stay collision free.
type Service interface {
	List(ctx context.Context, profileID uuid.UUID) ([]CardDTO, error)
	Create(ctx context.Context, profileID uuid.UUID, input CreateCardInput) (CardDTO, error)
	Update(ctx context.Context, profileID, cardID uuid.UUID, input UpdateCardInput) (CardDTO, error)
	Delete(ctx context.Context, profileID, cardID uuid.UUID) error
	Reorder(ctx context.Context, profileID, cardID uuid.UUID, direction enums.ReorderDirection) error
	ApplyTemplate(ctx context.Context, profileID uuid.UUID, template enums.LayoutTemplate) ([]CardDTO, error)
}

type service struct {
	repo   *Repository
	tx     txRunner
	policy *Policy
	audit  auditRecorder
}

// NewService builds a card service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.Policy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card policy is required")
	}
	return &service{
		repo:   params.Repo,
		tx:     params.Tx,
		policy: params.Policy,
		audit:  params.Audit,
	}, nil
}

// List returns the profile's cards in render order.
func (s *service) List(ctx context.Context, profileID uuid.UUID) ([]CardDTO, error) {
	if profileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required")
	}
	cards, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cards")
	}
	return toDTOs(cards), nil
}

// Create validates the payload and appends the card at max position + 1.
func (s *service) Create(ctx context.Context, profileID uuid.UUID, input CreateCardInput) (CardDTO, error) {
	if profileID == uuid.Nil {
		return CardDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required")
	}
	if err := s.policy.ValidateCreate(&input); err != nil {
		return CardDTO{}, err
	}

	card := models.Card{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Type:        input.Type,
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		URL:         input.URL,
		Icon:        input.Icon,
		Cols:        input.Cols,
		Rows:        input.Rows,
		Data:        input.Data,
		AccentColor: input.AccentColor,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		max, err := repo.MaxPosition(ctx, profileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute append position")
		}
		card.Position = max + 1
		if err := repo.Create(ctx, &card); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "card position conflict")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert card")
		}
		return nil
	})
	if err != nil {
		return CardDTO{}, err
	}

	s.recordAudit(ctx, "card.create", card.ID)
	return toDTO(card), nil
}

// Update applies a validated partial update to one card. Position is never
// touched here; ordering changes go through Reorder or ApplyTemplate.
func (s *service) Update(ctx context.Context, profileID, cardID uuid.UUID, input UpdateCardInput) (CardDTO, error) {
	if profileID == uuid.Nil || cardID == uuid.Nil {
		return CardDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "profile id and card id are required")
	}

	card, err := s.repo.FindByID(ctx, profileID, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CardDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
		}
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load card")
	}

	if err := s.policy.ValidateUpdate(&card, &input); err != nil {
		return CardDTO{}, err
	}

	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = *input.Title
		card.Title = *input.Title
	}
	if input.Subtitle != nil {
		fields["subtitle"] = input.Subtitle
		card.Subtitle = input.Subtitle
	}
	if input.URL != nil {
		fields["url"] = input.URL
		card.URL = input.URL
	}
	if input.Icon != nil {
		fields["icon"] = input.Icon
		card.Icon = input.Icon
	}
	if input.Cols != nil {
		fields["cols"] = *input.Cols
		card.Cols = *input.Cols
	}
	if input.Rows != nil {
		fields["rows"] = *input.Rows
		card.Rows = *input.Rows
	}
	if input.Data != nil {
		// The policy already merged the patch over the stored data and
		// refreshed derived fields such as map coordinates.
		fields["data"] = *input.Data
		card.Data = *input.Data
	}
	if input.AccentColor != nil {
		fields["accent_color"] = input.AccentColor
		card.AccentColor = input.AccentColor
	}

	if err := s.repo.UpdateFields(ctx, cardID, fields); err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update card")
	}

	s.recordAudit(ctx, "card.update", cardID)
	return toDTO(card), nil
}

// Delete removes the card. A missing card is a silent success, and the
// surviving cards keep their positions.
func (s *service) Delete(ctx context.Context, profileID, cardID uuid.UUID) error {
	if profileID == uuid.Nil || cardID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "profile id and card id are required")
	}
	removed, err := s.repo.Delete(ctx, profileID, cardID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete card")
	}
	if removed > 0 {
		s.recordAudit(ctx, "card.delete", cardID)
	}
	return nil
}

// Reorder moves a card one step. The card vacates its slot to a position
// above the live range, the neighbor takes the old slot, and the card lands
// on the neighbor's, so the unique index holds after every statement. A
// missing card or neighbor is a silent success.
func (s *service) Reorder(ctx context.Context, profileID, cardID uuid.UUID, direction enums.ReorderDirection) error {
	if profileID == uuid.Nil || cardID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "profile id and card id are required")
	}
	if !direction.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid reorder direction").
			WithDetails(map[string]string{"direction": "must be up or down"})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cards, err := repo.ListByProfile(ctx, profileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cards")
		}

		swap, ok := PlanSwap(cards, cardID, direction)
		if !ok {
			return nil
		}

		if err := repo.UpdatePosition(ctx, swap.CardID, swap.TempPosition); err != nil {
			return wrapPositionWrite(err)
		}
		if err := repo.UpdatePosition(ctx, swap.NeighborID, swap.CardPosition); err != nil {
			return wrapPositionWrite(err)
		}
		if err := repo.UpdatePosition(ctx, swap.CardID, swap.NeighborPosition); err != nil {
			return wrapPositionWrite(err)
		}
		return nil
	})
}

// ApplyTemplate re-lays the whole grid. Phase one parks every card in the
// quarantine range, phase two writes the final spans and the contiguous
// 1..N positions, all inside one transaction.
func (s *service) ApplyTemplate(ctx context.Context, profileID uuid.UUID, template enums.LayoutTemplate) ([]CardDTO, error) {
	if profileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required")
	}
	if !template.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid layout template").
			WithDetails(map[string]string{"template": "unknown template name"})
	}

	var result []CardDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cards, err := repo.ListByProfile(ctx, profileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cards")
		}
		if len(cards) == 0 {
			result = []CardDTO{}
			return nil
		}

		placements := PlanTemplate(cards, template)
		maxPos := NextPosition(cards) - 1

		for i, card := range cards {
			if err := repo.UpdatePosition(ctx, card.ID, QuarantinePosition(maxPos, i)); err != nil {
				return wrapPositionWrite(err)
			}
		}
		for _, placement := range placements {
			if err := repo.UpdatePlacement(ctx, placement.ID, placement.Cols, placement.Rows, placement.Position); err != nil {
				return wrapPositionWrite(err)
			}
		}

		updated, err := repo.ListByProfile(ctx, profileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cards")
		}
		result = toDTOs(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "card.apply_template", profileID)
	return result, nil
}

func (s *service) recordAudit(ctx context.Context, action string, entityID uuid.UUID) {
	if s.audit == nil {
		return
	}
	entity := "card"
	if action == "card.apply_template" {
		entity = "profile"
	}
	s.audit.Record(ctx, nil, action, entity, entityID.String())
}

func wrapPositionWrite(err error) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "position conflict during relayout")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write position")
}

func mergeData(current, patch types.CardData) types.CardData {
	merged := current
	if patch.Images != nil {
		merged.Images = patch.Images
	}
	if patch.Location != nil {
		merged.Location = patch.Location
	}
	if patch.Recipient != nil {
		merged.Recipient = patch.Recipient
	}
	return merged
}
