package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/internal/users"
	pkgAuth "github.com/bentolink/bentolink-backend/pkg/auth"
	"github.com/bentolink/bentolink-backend/pkg/auth/session"
	"github.com/bentolink/bentolink-backend/pkg/config"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "bentolink-test",
	ExpirationMinutes: 15,
}

type stubSession struct {
	tokens map[string]string
	seq    int
}

func newStubSession() *stubSession {
	return &stubSession{tokens: map[string]string{}}
}

func (s *stubSession) Generate(_ context.Context, accessID string) (string, error) {
	s.seq++
	token := fmt.Sprintf("refresh-%d", s.seq)
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSession) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	s.seq++
	newAccessID := session.NewAccessID()
	token := fmt.Sprintf("refresh-%d", s.seq)
	s.tokens[newAccessID] = token
	return newAccessID, token, nil
}

func (s *stubSession) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	return nil
}

type testTxRunner struct {
	db *gorm.DB
}

func (t testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  handle TEXT NOT NULL UNIQUE,
  display_name TEXT NOT NULL,
  bio TEXT,
  theme TEXT,
  avatar_asset_id TEXT,
  banner_asset_id TEXT,
  clicks INTEGER NOT NULL DEFAULT 0,
  is_public INTEGER NOT NULL DEFAULT 1,
  published_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestAuthService(t *testing.T) (Service, *stubSession) {
	t.Helper()
	db := setupAuthTestDB(t)
	sessions := newStubSession()
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(db),
		ProfileRepo:    profiles.NewRepository(db),
		SessionManager: sessions,
		Tx:             testTxRunner{db: db},
		JWTConfig:      testJWTConfig,
		PasswordConfig: config.PasswordConfig{},
	})
	require.NoError(t, err)
	return svc, sessions
}

func mustRegister(t *testing.T, svc Service, email, handle string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Handle:   handle,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesAccountAndSignsIn(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp := mustRegister(t, svc, "Alice@Example.com", "Alice_1")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice_1", resp.Handle)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEqual(t, uuid.Nil, resp.ProfileID)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	require.NotNil(t, claims.ProfileID)
	assert.Equal(t, resp.ProfileID, *claims.ProfileID)
	assert.Equal(t, "alice_1", claims.Handle)
}

func TestRegisterDuplicateEmailAndHandle(t *testing.T) {
	svc, _ := newTestAuthService(t)
	mustRegister(t, svc, "alice@example.com", "alice")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		Handle:   "someone-else",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "bob@example.com",
		Password: "correct-horse",
		Handle:   "alice",
	})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc, _ := newTestAuthService(t)

	cases := []RegisterRequest{
		{Email: "not-an-email", Password: "correct-horse", Handle: "alice"},
		{Email: "a@b.com", Password: "short", Handle: "alice"},
		{Email: "a@b.com", Password: "correct-horse", Handle: "x"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	mustRegister(t, svc, "alice@example.com", "alice")
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Email: "ALICE@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLogin)

	_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	first := mustRegister(t, svc, "alice@example.com", "alice")
	ctx := context.Background()

	second, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, first.ProfileID, second.ProfileID)
	assert.Equal(t, "alice", second.Handle)

	// The old pair is single-use.
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestRefreshRejectsTamperedToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	first := mustRegister(t, svc, "alice@example.com", "alice")

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken + "x",
		RefreshToken: first.RefreshToken,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	first := mustRegister(t, svc, "alice@example.com", "alice")

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, first.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), claims.ID))
	assert.Empty(t, sessions.tokens)

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	require.Error(t, err)
}
