package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentolink/bentolink-backend/internal/profiles"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
)

type stubPublicPageService struct {
	profiles.Service
	handle string
	page   profiles.PublicPageDTO
	err    error
}

func (s *stubPublicPageService) PublicPage(ctx context.Context, handle string) (profiles.PublicPageDTO, error) {
	s.handle = handle
	return s.page, s.err
}

type stubClickService struct {
	tracked []uuid.UUID
	flushed int
	err     error
}

func (s *stubClickService) Track(ctx context.Context, cardID uuid.UUID) error {
	s.tracked = append(s.tracked, cardID)
	return s.err
}

func (s *stubClickService) Flush(ctx context.Context) (int, error) {
	return s.flushed, s.err
}

func TestPublicPage(t *testing.T) {
	svc := &stubPublicPageService{page: profiles.PublicPageDTO{Handle: "alice", DisplayName: "Alice"}}

	r := chi.NewRouter()
	r.Get("/api/v1/public/pages/{handle}", PublicPage(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/pages/alice", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "alice", svc.handle)
	assert.Contains(t, rec.Body.String(), `"displayName":"Alice"`)
}

func TestPublicPageNotFound(t *testing.T) {
	svc := &stubPublicPageService{err: pkgerrors.New(pkgerrors.CodeNotFound, "page not found")}

	r := chi.NewRouter()
	r.Get("/api/v1/public/pages/{handle}", PublicPage(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/pages/ghost", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeNotFound), decodeErrorCode(t, rec))
}

func TestPublicCardClickAccepted(t *testing.T) {
	svc := &stubClickService{}
	cardID := uuid.New()

	r := chi.NewRouter()
	r.Post("/api/v1/public/cards/{cardId}/click", PublicCardClick(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/public/cards/"+cardID.String()+"/click", nil))

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	require.Len(t, svc.tracked, 1)
	assert.Equal(t, cardID, svc.tracked[0])
}

func TestPublicCardClickRejectsBadID(t *testing.T) {
	svc := &stubClickService{}

	r := chi.NewRouter()
	r.Post("/api/v1/public/cards/{cardId}/click", PublicCardClick(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/public/cards/nope/click", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.tracked)
}

func TestPublicCardClickSwallowsBufferFailure(t *testing.T) {
	svc := &stubClickService{err: pkgerrors.New(pkgerrors.CodeDependency, "redis unavailable")}
	cardID := uuid.New()

	r := chi.NewRouter()
	r.Post("/api/v1/public/cards/{cardId}/click", PublicCardClick(svc, testLogger()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/public/cards/"+cardID.String()+"/click", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
}
