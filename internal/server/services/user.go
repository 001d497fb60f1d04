// Package services contains server-side business logic. This file
// implements UserService, which handles registration, login, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/server/auth"
	"github.com/dmitrijs2005/shopkeeper/internal/server/config"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create users
//   - Login: verify credentials and mint a token pair
//   - Refresh: mint a new access token against a live refresh token
//   - Logout: revoke a refresh token
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account for email with a bcrypt-hashed password.
// The email lookup is a fast path; the unique index on users.email is the
// authoritative guard, so a duplicate insert racing past the check still
// comes back as common.ErrorEmailExists.
func (s *UserService) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return common.ErrMissingField
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		if err == nil {
			return common.ErrorEmailExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking email: %w", err)
		}

		if _, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: passwordHash}); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrorEmailExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// An unknown email and a wrong password are indistinguishable to the
// caller: both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingField
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	return s.generateTokenPair(ctx, user.ID)
}

// Refresh validates a refresh token and mints a new access token for its
// owner. The refresh token is not rotated or consumed: it stays valid for
// repeated use until its expiry or an explicit logout. Dead tokens yield
// common.ErrRefreshTokenInvalid whether they expired or never existed.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", common.ErrMissingField
	}

	repo := s.repomanager.RefreshTokens(s.db)
	token, err := repo.FindLive(ctx, refreshToken, time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrRefreshTokenInvalid
		}
		return "", fmt.Errorf("error searching refresh token: %w", err)
	}

	access, err := s.generateAccessToken(token.UserID)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}

// Logout revokes the refresh token. Revoking a token that is already gone
// still succeeds, so a repeated logout never errors.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return common.ErrMissingField
	}

	repo := s.repomanager.RefreshTokens(s.db)
	if err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(s.db)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
