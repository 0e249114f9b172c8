package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"smart-life-organizer/internal/model"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Clock supplies the time used for issuing and checking expiry.
type Clock func() time.Time

type tokenClaims struct {
	jwt.RegisteredClaims
	Type  string `json:"typ"`
	Fresh *bool  `json:"fresh,omitempty"`
}

// TokenIssuer mints HS256 tokens. Its output depends only on its arguments,
// the clock and the secret.
type TokenIssuer struct {
	secret []byte
	now    Clock
}

func NewTokenIssuer(secret []byte, now Clock) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: secret, now: now}
}

func (i *TokenIssuer) IssueAccessToken(subject string, fresh bool, ttl time.Duration) (string, error) {
	return i.sign(subject, TokenTypeAccess, &fresh, ttl)
}

func (i *TokenIssuer) IssueRefreshToken(subject string, ttl time.Duration) (string, error) {
	return i.sign(subject, TokenTypeRefresh, nil, ttl)
}

func (i *TokenIssuer) sign(subject string, typ string, fresh *bool, ttl time.Duration) (string, error) {
	now := i.now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:  typ,
		Fresh: fresh,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// TokenValidator checks signature and expiry, then resolves the subject to a
// live user through the credential store.
type TokenValidator struct {
	secret []byte
	now    Clock
	store  CredentialStore
}

func NewTokenValidator(secret []byte, now Clock, store CredentialStore) *TokenValidator {
	if now == nil {
		now = time.Now
	}
	return &TokenValidator{secret: secret, now: now, store: store}
}

func (v *TokenValidator) Validate(ctx context.Context, tokenString string, expectedType string) (model.Principal, error) {
	claims, err := v.parse(tokenString, expectedType)
	if err != nil {
		return model.Principal{}, err
	}

	user, err := v.store.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Principal{}, model.ErrSubjectNotFound
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("resolve token subject: %w", err)
	}
	if !user.IsActive {
		return model.Principal{}, model.ErrSubjectNotFound
	}

	return model.Principal{
		User:    user,
		Fresh:   claims.Fresh != nil && *claims.Fresh,
		TokenID: claims.ID,
	}, nil
}

// parse verifies the signature before the claims, so a token signed with a
// foreign key is reported invalid even when it has also expired.
func (v *TokenValidator) parse(tokenString string, expectedType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, model.ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}

	if claims.Type != expectedType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", model.ErrTokenInvalid, expectedType, claims.Type)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", model.ErrTokenInvalid)
	}
	if expectedType == TokenTypeRefresh && claims.Fresh != nil {
		return nil, fmt.Errorf("%w: refresh token carries a freshness claim", model.ErrTokenInvalid)
	}

	return claims, nil
}
