package cards

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bentolink/bentolink-backend/pkg/db/models"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/maps"
	"github.com/bentolink/bentolink-backend/pkg/themes"
	"github.com/bentolink/bentolink-backend/pkg/types"
)

const (
	titleMaxLen      = 80
	subtitleMaxLen   = 120
	galleryMaxImages = 6
)

var hexColorRe = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// CoordinateParser extracts a lat/lng pair from a map-provider URL.
type CoordinateParser func(rawURL string) (*types.LatLng, error)

// Policy validates and normalizes card payloads before they reach the
// layout engine. It is stateless per request.
type Policy struct {
	parseCoords CoordinateParser
}

// NewPolicy builds the card type policy. A nil parser falls back to the
// built-in map URL parser.
func NewPolicy(parser CoordinateParser) *Policy {
	if parser == nil {
		parser = maps.ParseLatLng
	}
	return &Policy{parseCoords: parser}
}

// ValidateCreate checks a create payload and normalizes it in place.
func (p *Policy) ValidateCreate(input *CreateCardInput) error {
	fields := map[string]string{}

	if !input.Type.IsValid() {
		fields["type"] = fmt.Sprintf("unknown card type %q", input.Type)
		return validationError(fields)
	}

	input.Title = strings.TrimSpace(input.Title)
	validateTitle(fields, input.Title)
	validateSubtitle(fields, input.Subtitle)
	validateSpan(fields, input.Cols, input.Rows)
	normalizeAccent(fields, &input.AccentColor)
	p.validateTyped(fields, input.Type, &input.URL, &input.Data)

	if len(fields) > 0 {
		return validationError(fields)
	}

	input.Cols, input.Rows = clampDims(input.Type, input.Cols, input.Rows)
	return nil
}

// ValidateUpdate checks a partial update against the card it targets and
// normalizes the patch in place. Typed rules run over the merge of the
// stored card and the patch, so a url-only update on a map card refreshes
// the derived coordinates and a data-only patch keeps the stored url.
func (p *Policy) ValidateUpdate(card *models.Card, input *UpdateCardInput) error {
	fields := map[string]string{}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
		validateTitle(fields, trimmed)
	}
	validateSubtitle(fields, input.Subtitle)

	cols := 0
	rows := 0
	if input.Cols != nil {
		cols = *input.Cols
	}
	if input.Rows != nil {
		rows = *input.Rows
	}
	if input.Cols != nil || input.Rows != nil {
		validateSpan(fields, cols, rows)
	}

	normalizeAccent(fields, &input.AccentColor)

	if input.URL != nil || input.Data != nil {
		mergedURL := input.URL
		if mergedURL == nil {
			mergedURL = card.URL
		}
		mergedData := card.Data
		if input.Data != nil {
			mergedData = mergeData(card.Data, *input.Data)
		}
		p.validateTyped(fields, card.Type, &mergedURL, &mergedData)
		if input.URL != nil {
			input.URL = mergedURL
		}
		input.Data = &mergedData
	}

	if len(fields) > 0 {
		return validationError(fields)
	}

	if input.Cols != nil || input.Rows != nil {
		clampedCols, clampedRows := clampDims(card.Type, cols, rows)
		if input.Cols != nil {
			*input.Cols = clampedCols
		}
		if input.Rows != nil {
			*input.Rows = clampedRows
		}
	}
	return nil
}

func (p *Policy) validateTyped(fields map[string]string, cardType enums.CardType, cardURL **string, data *types.CardData) {
	rawURL := ""
	if *cardURL != nil {
		rawURL = strings.TrimSpace(**cardURL)
	}

	switch {
	case cardType.RequiresURL():
		if rawURL == "" {
			fields["url"] = fmt.Sprintf("%s cards require a url", cardType)
			return
		}
		if !isUsableURL(rawURL) {
			fields["url"] = "url must be a valid http(s) or mailto link"
			return
		}
		*cardURL = &rawURL

		if cardType == enums.CardTypeMap {
			location, err := p.parseCoords(rawURL)
			if err != nil || location == nil {
				fields["url"] = "could not extract coordinates from map url"
				return
			}
			data.Location = location
		}

	case cardType == enums.CardTypeContact:
		// No url stored without one given; the mailto fallback is
		// resolved at render time from the owner's current email.
		if rawURL == "" {
			*cardURL = nil
		} else if !isUsableURL(rawURL) {
			fields["url"] = "url must be a valid http(s) or mailto link"
		} else {
			*cardURL = &rawURL
		}

	default:
		// text, divider, image, gallery ignore the url entirely
		*cardURL = nil
	}

	if cardType == enums.CardTypeGallery {
		if len(data.Images) == 0 {
			fields["data.images"] = "gallery cards require at least one image"
			return
		}
		if len(data.Images) > galleryMaxImages {
			data.Images = data.Images[:galleryMaxImages]
		}
	}
}

func validateTitle(fields map[string]string, title string) {
	if title == "" {
		fields["title"] = "title is required"
	} else if len([]rune(title)) > titleMaxLen {
		fields["title"] = fmt.Sprintf("title exceeds %d characters", titleMaxLen)
	}
}

func validateSubtitle(fields map[string]string, subtitle *string) {
	if subtitle != nil && len([]rune(*subtitle)) > subtitleMaxLen {
		fields["subtitle"] = fmt.Sprintf("subtitle exceeds %d characters", subtitleMaxLen)
	}
}

func validateSpan(fields map[string]string, cols, rows int) {
	if cols != 0 && (cols < minCols || cols > maxCols) {
		fields["cols"] = fmt.Sprintf("cols must be between %d and %d", minCols, maxCols)
	}
	if rows != 0 && (rows < minRows || rows > maxRows) {
		fields["rows"] = fmt.Sprintf("rows must be between %d and %d", minRows, maxRows)
	}
}

func normalizeAccent(fields map[string]string, accent **string) {
	if *accent == nil {
		return
	}
	normalized := themes.NormalizeColor(**accent)
	if normalized == "" {
		*accent = nil
		return
	}
	if !hexColorRe.MatchString(normalized) {
		fields["accentColor"] = "accent color must be a hex triplet"
		return
	}
	*accent = &normalized
}

func isUsableURL(raw string) bool {
	if strings.HasPrefix(raw, "mailto:") {
		return len(raw) > len("mailto:")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func validationError(fields map[string]string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid card payload").WithDetails(fields)
}
