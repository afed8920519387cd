package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bentolink/bentolink-backend/pkg/config"
	"github.com/bentolink/bentolink-backend/pkg/db/models"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/storage/gcs"
	"github.com/google/uuid"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type objectStore interface {
	UploadObject(ctx context.Context, key, contentType string, payload []byte) (*gcs.StoredObject, error)
	DeleteObject(ctx context.Context, key string) error
}

// AssetDTO is the wire shape for one uploaded asset.
type AssetDTO struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadInput carries one raw upload into the service.
type UploadInput struct {
	ContentType string
	Payload     []byte
}

// ServiceParams groups dependencies for the media service.
type ServiceParams struct {
	Repo  *Repository
	Store objectStore
	Cfg   config.MediaConfig
}

// Service stores uploaded images and records them as assets.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (AssetDTO, error)
	Get(ctx context.Context, id uuid.UUID) (AssetDTO, error)
}

type service struct {
	repo     *Repository
	store    objectStore
	maxBytes int64
}

// NewService builds a media service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset repo is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "object store is required")
	}
	maxMB := params.Cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &service{
		repo:     params.Repo,
		store:    params.Store,
		maxBytes: int64(maxMB) << 20,
	}, nil
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (AssetDTO, error) {
	if userID == uuid.Nil {
		return AssetDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return AssetDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported content type").
			WithDetails(map[string]string{"contentType": "must be one of image/jpeg, image/png, image/webp, image/gif"})
	}
	if len(input.Payload) == 0 {
		return AssetDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "upload is empty")
	}
	if int64(len(input.Payload)) > s.maxBytes {
		return AssetDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "upload too large").
			WithDetails(map[string]string{"payload": fmt.Sprintf("must be at most %d bytes", s.maxBytes)})
	}

	id := uuid.New()
	key := path.Join("uploads", userID.String(), id.String()+ext)

	stored, err := s.store.UploadObject(ctx, key, contentType, input.Payload)
	if err != nil {
		return AssetDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store upload")
	}

	asset := &models.Asset{
		ID:          id,
		UserID:      userID,
		Bucket:      stored.Bucket,
		Key:         stored.Key,
		ContentType: stored.ContentType,
		URL:         stored.URL,
		SizeBytes:   stored.SizeBytes,
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		// Best effort: don't leave an orphaned object behind.
		_ = s.store.DeleteObject(ctx, key)
		return AssetDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record asset")
	}

	return toDTO(asset), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (AssetDTO, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "asset not found")
	}
	return toDTO(asset), nil
}

func toDTO(asset *models.Asset) AssetDTO {
	return AssetDTO{
		ID:          asset.ID,
		URL:         asset.URL,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		CreatedAt:   asset.CreatedAt,
	}
}
