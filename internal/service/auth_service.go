package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smart-life-organizer/internal/config"
	"smart-life-organizer/internal/model"
)

const tokenTypeBearer = "bearer"

type AuthService struct {
	users      CredentialStore
	hasher     *PasswordHasher
	issuer     *TokenIssuer
	validator  *TokenValidator
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(cfg *config.Config, users CredentialStore, hasher *PasswordHasher, now Clock, logger *slog.Logger) *AuthService {
	secret := []byte(cfg.SecretKey)
	return &AuthService{
		users:      users,
		hasher:     hasher,
		issuer:     NewTokenIssuer(secret, now),
		validator:  NewTokenValidator(secret, now, users),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		logger:     logger,
	}
}

// Login exchanges a username and password for a fresh access token and a
// refresh token. Unknown users, inactive users and wrong passwords all fail
// with model.ErrAuthentication.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		s.hasher.VerifyDummy(password)
		s.logger.Info("login rejected", "username", username, "reason", "unknown user")
		return model.TokenPair{}, model.ErrAuthentication
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("load user for login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info("login rejected", "username", username, "reason", "wrong password")
		return model.TokenPair{}, model.ErrAuthentication
	}
	if !user.IsActive {
		s.logger.Info("login rejected", "username", username, "reason", "inactive")
		return model.TokenPair{}, model.ErrAuthentication
	}

	return s.issuePair(user.Username, true)
}

// Refresh validates a refresh token and returns a new pair. The access token
// is never fresh. The presented refresh token stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	principal, err := s.validator.Validate(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	return s.issuePair(principal.User.Username, false)
}

// Authenticate resolves a bearer access token into the calling principal.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (model.Principal, error) {
	return s.validator.Validate(ctx, accessToken, TokenTypeAccess)
}

func (s *AuthService) issuePair(subject string, fresh bool) (model.TokenPair, error) {
	accessToken, err := s.issuer.IssueAccessToken(subject, fresh, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.issuer.IssueRefreshToken(subject, s.refreshTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
	}, nil
}
