package media

import (
	"context"
	"fmt"
	"testing"

	"github.com/bentolink/bentolink-backend/pkg/config"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/storage/gcs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeStore struct {
	uploads  []string
	deletes  []string
	fail     bool
	lastType string
}

func (f *fakeStore) UploadObject(_ context.Context, key, contentType string, payload []byte) (*gcs.StoredObject, error) {
	if f.fail {
		return nil, fmt.Errorf("bucket unavailable")
	}
	f.uploads = append(f.uploads, key)
	f.lastType = contentType
	return &gcs.StoredObject{
		Bucket:      "test-bucket",
		Key:         key,
		ContentType: contentType,
		URL:         "https://storage.googleapis.com/test-bucket/" + key,
		SizeBytes:   int64(len(payload)),
	}, nil
}

func (f *fakeStore) DeleteObject(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func setupMediaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:media_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS assets (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  bucket TEXT NOT NULL,
  key TEXT NOT NULL,
  content_type TEXT NOT NULL,
  url TEXT NOT NULL,
  size_bytes INTEGER NOT NULL,
  width INTEGER,
  height INTEGER,
  created_at DATETIME,
  UNIQUE (bucket, key)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestMediaService(t *testing.T, store *fakeStore, maxMB int) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupMediaTestDB(t))
	svc, err := NewService(ServiceParams{
		Repo:  repo,
		Store: store,
		Cfg:   config.MediaConfig{MaxUploadMB: maxMB},
	})
	require.NoError(t, err)
	return svc, repo
}

func TestUploadStoresObjectAndAsset(t *testing.T) {
	store := &fakeStore{}
	svc, repo := newTestMediaService(t, store, 10)
	userID := uuid.New()

	dto, err := svc.Upload(context.Background(), userID, UploadInput{
		ContentType: "image/png",
		Payload:     []byte("not-really-a-png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", dto.ContentType)
	assert.Contains(t, dto.URL, "test-bucket")
	require.Len(t, store.uploads, 1)
	assert.Contains(t, store.uploads[0], "uploads/"+userID.String()+"/")
	assert.Contains(t, store.uploads[0], ".png")

	stored, err := repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, int64(len("not-really-a-png")), stored.SizeBytes)
}

func TestUploadRejectsBadContentType(t *testing.T) {
	svc, _ := newTestMediaService(t, &fakeStore{}, 10)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		ContentType: "application/pdf",
		Payload:     []byte("%PDF"),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	svc, _ := newTestMediaService(t, &fakeStore{}, 1)

	payload := make([]byte, (1<<20)+1)
	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		ContentType: "image/jpeg",
		Payload:     payload,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUploadStoreFailure(t *testing.T) {
	svc, _ := newTestMediaService(t, &fakeStore{fail: true}, 10)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		ContentType: "image/webp",
		Payload:     []byte("payload"),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}

func TestGetMissingAsset(t *testing.T) {
	svc, _ := newTestMediaService(t, &fakeStore{}, 10)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
