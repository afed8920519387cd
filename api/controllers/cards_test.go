package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentolink/bentolink-backend/api/middleware"
	"github.com/bentolink/bentolink-backend/internal/cards"
	"github.com/bentolink/bentolink-backend/pkg/enums"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/logger"
)

type stubCardService struct {
	listed         uuid.UUID
	createdInput   cards.CreateCardInput
	updatedInput   cards.UpdateCardInput
	deletedCard    uuid.UUID
	reorderedDir   enums.ReorderDirection
	templateChosen enums.LayoutTemplate
	err            error
}

func (s *stubCardService) List(ctx context.Context, profileID uuid.UUID) ([]cards.CardDTO, error) {
	s.listed = profileID
	return []cards.CardDTO{{Title: "Hero", Position: 1}}, s.err
}

func (s *stubCardService) Create(ctx context.Context, profileID uuid.UUID, input cards.CreateCardInput) (cards.CardDTO, error) {
	s.createdInput = input
	return cards.CardDTO{ID: uuid.New(), Title: input.Title, Type: input.Type, Position: 1}, s.err
}

func (s *stubCardService) Update(ctx context.Context, profileID, cardID uuid.UUID, input cards.UpdateCardInput) (cards.CardDTO, error) {
	s.updatedInput = input
	return cards.CardDTO{ID: cardID}, s.err
}

func (s *stubCardService) Delete(ctx context.Context, profileID, cardID uuid.UUID) error {
	s.deletedCard = cardID
	return s.err
}

func (s *stubCardService) Reorder(ctx context.Context, profileID, cardID uuid.UUID, direction enums.ReorderDirection) error {
	s.reorderedDir = direction
	return s.err
}

func (s *stubCardService) ApplyTemplate(ctx context.Context, profileID uuid.UUID, template enums.LayoutTemplate) ([]cards.CardDTO, error) {
	s.templateChosen = template
	return []cards.CardDTO{}, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithProfileID(ctx, uuid.NewString())
	return req.WithContext(ctx)
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestCardsCreate(t *testing.T) {
	svc := &stubCardService{}
	logg := testLogger()

	r := chi.NewRouter()
	r.Post("/api/v1/cards", CardsCreate(svc, logg))

	body, err := json.Marshal(map[string]any{
		"type":  "link",
		"title": "My Blog",
		"url":   "https://example.com/blog",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/cards", body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, enums.CardTypeLink, svc.createdInput.Type)
	assert.Equal(t, "My Blog", svc.createdInput.Title)
}

func TestCardsCreateRejectsUnknownType(t *testing.T) {
	svc := &stubCardService{}

	r := chi.NewRouter()
	r.Post("/api/v1/cards", CardsCreate(svc, testLogger()))

	body, err := json.Marshal(map[string]any{"type": "hologram", "title": "Nope"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/cards", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeErrorCode(t, rec))
}

func TestCardsCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubCardService{}

	r := chi.NewRouter()
	r.Post("/api/v1/cards", CardsCreate(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/v1/cards",
		[]byte(`{"type":"link","title":"x","surprise":true}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCardsCreateRequiresProfileContext(t *testing.T) {
	svc := &stubCardService{}

	r := chi.NewRouter()
	r.Post("/api/v1/cards", CardsCreate(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cards", bytes.NewReader([]byte(`{"type":"link","title":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCardsReorder(t *testing.T) {
	svc := &stubCardService{}
	cardID := uuid.New()

	r := chi.NewRouter()
	r.Post("/api/v1/cards/{cardId}/reorder", CardsReorder(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost,
		"/api/v1/cards/"+cardID.String()+"/reorder", []byte(`{"direction":"up"}`)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, enums.ReorderDirectionUp, svc.reorderedDir)
}

func TestCardsReorderRejectsBadDirection(t *testing.T) {
	svc := &stubCardService{}
	cardID := uuid.New()

	r := chi.NewRouter()
	r.Post("/api/v1/cards/{cardId}/reorder", CardsReorder(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost,
		"/api/v1/cards/"+cardID.String()+"/reorder", []byte(`{"direction":"sideways"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCardsDeleteRejectsBadCardID(t *testing.T) {
	svc := &stubCardService{}

	r := chi.NewRouter()
	r.Delete("/api/v1/cards/{cardId}", CardsDelete(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/api/v1/cards/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, svc.deletedCard)
}

func TestCardsApplyTemplate(t *testing.T) {
	svc := &stubCardService{}

	r := chi.NewRouter()
	r.Post("/api/v1/cards/apply-template", CardsApplyTemplate(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodPost,
		"/api/v1/cards/apply-template", []byte(`{"template":"hero_2"}`)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, enums.LayoutTemplateHero2, svc.templateChosen)
}

func TestCardsServiceErrorPassthrough(t *testing.T) {
	svc := &stubCardService{err: pkgerrors.New(pkgerrors.CodeNotFound, "card not found")}

	r := chi.NewRouter()
	r.Get("/api/v1/cards", CardsList(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/v1/cards", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeNotFound), decodeErrorCode(t, rec))
}
