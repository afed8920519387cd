package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bentolink/bentolink-backend/internal/profiles"
	"github.com/bentolink/bentolink-backend/internal/users"
	pkgAuth "github.com/bentolink/bentolink-backend/pkg/auth"
	"github.com/bentolink/bentolink-backend/pkg/auth/session"
	"github.com/bentolink/bentolink-backend/pkg/config"
	"github.com/bentolink/bentolink-backend/pkg/db"
	"github.com/bentolink/bentolink-backend/pkg/db/models"
	pkgerrors "github.com/bentolink/bentolink-backend/pkg/errors"
	"github.com/bentolink/bentolink-backend/pkg/security"
	"github.com/bentolink/bentolink-backend/pkg/themes"
	"github.com/bentolink/bentolink-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

type userRepository interface {
	WithTx(tx *gorm.DB) *users.Repository
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type profileRepository interface {
	WithTx(tx *gorm.DB) *profiles.Repository
	Create(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	HandleTaken(ctx context.Context, handle string, excludeID uuid.UUID) (bool, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entity, entityID string)
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	Logout(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	ProfileRepo    profileRepository
	SessionManager sessionManager
	Tx             txRunner
	Audit          auditRecorder
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	users       userRepository
	profiles    profileRepository
	session     sessionManager
	tx          txRunner
	audit       auditRecorder
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repository is required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	return &service{
		users:       params.UserRepo,
		profiles:    params.ProfileRepo,
		session:     params.SessionManager,
		tx:          params.Tx,
		audit:       params.Audit,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Register creates the account and its page in one transaction, then signs
// the new user in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email").
			WithDetails(map[string]string{"email": "must be a valid address"})
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password too short").
			WithDetails(map[string]string{"password": "must be at least 8 characters"})
	}
	handle, err := profiles.NormalizeHandle(req.Handle)
	if err != nil {
		return nil, err
	}

	taken, err := s.profiles.HandleTaken(ctx, handle, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check handle")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "handle already in use")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = handle
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	profile := &models.Profile{
		ID:          uuid.New(),
		UserID:      user.ID,
		Handle:      handle,
		DisplayName: displayName,
		Theme:       types.Theme{Preset: themes.DefaultPreset},
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Create(ctx, profile)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email or handle already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
	}

	s.record(ctx, &user.ID, "auth.register", "user", user.ID.String())
	return s.issueTokens(ctx, user, profile, time.Now().UTC())
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup profile")
	}

	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &user.ID, "auth.login", "user", user.ID.String())
	return s.issueTokens(ctx, user, profile, now)
}

// Refresh rotates the refresh token and re-mints an access token for the
// same identity. The access token may be expired; only its signature and
// jti are inspected.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}

	newAccessID, refreshToken, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	payload := pkgAuth.AccessTokenPayload{
		UserID:    claims.UserID,
		ProfileID: claims.ProfileID,
		Handle:    claims.Handle,
		JTI:       newAccessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	resp := &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Handle:       claims.Handle,
	}
	if claims.ProfileID != nil {
		resp.ProfileID = *claims.ProfileID
	}
	return resp, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User, profile *models.Profile, now time.Time) (*AuthResponse, error) {
	accessID := session.NewAccessID()
	payload := pkgAuth.AccessTokenPayload{
		UserID:    user.ID,
		ProfileID: &profile.ID,
		Handle:    profile.Handle,
		JTI:       accessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
		ProfileID:    profile.ID,
		Handle:       profile.Handle,
	}, nil
}

func (s *service) record(ctx context.Context, userID *uuid.UUID, action, entity, entityID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, userID, action, entity, entityID)
}
