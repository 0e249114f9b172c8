package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-life-organizer/internal/model"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestTokenValidator_AccessToken(t *testing.T) {
	f := newFixture(t)
	issuer := NewTokenIssuer([]byte(testSecret), nil)
	validator := NewTokenValidator([]byte(testSecret), nil, f.mem.Users())

	for _, fresh := range []bool{true, false} {
		token, err := issuer.IssueAccessToken("alice", fresh, time.Minute)
		require.NoError(t, err)

		p, err := validator.Validate(context.Background(), token, TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, p.User.ID)
		assert.Equal(t, fresh, p.Fresh)
		assert.NotEmpty(t, p.TokenID)
	}
}

func TestTokenValidator_Expiry(t *testing.T) {
	f := newFixture(t)
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte(testSecret), fixedClock(issuedAt))

	token, err := issuer.IssueAccessToken("alice", true, 30*time.Minute)
	require.NoError(t, err)

	t.Run("before expiry", func(t *testing.T) {
		v := NewTokenValidator([]byte(testSecret), fixedClock(issuedAt.Add(29*time.Minute+59*time.Second)), f.mem.Users())
		_, err := v.Validate(context.Background(), token, TokenTypeAccess)
		assert.NoError(t, err)
	})

	t.Run("after expiry", func(t *testing.T) {
		v := NewTokenValidator([]byte(testSecret), fixedClock(issuedAt.Add(30*time.Minute+time.Second)), f.mem.Users())
		_, err := v.Validate(context.Background(), token, TokenTypeAccess)
		assert.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("negative ttl", func(t *testing.T) {
		expired, err := NewTokenIssuer([]byte(testSecret), nil).IssueAccessToken("alice", true, -time.Second)
		require.NoError(t, err)

		v := NewTokenValidator([]byte(testSecret), nil, f.mem.Users())
		_, err = v.Validate(context.Background(), expired, TokenTypeAccess)
		assert.ErrorIs(t, err, model.ErrTokenExpired)
	})
}

func TestTokenValidator_Rejects(t *testing.T) {
	f := newFixture(t)
	issuer := NewTokenIssuer([]byte(testSecret), nil)
	validator := NewTokenValidator([]byte(testSecret), nil, f.mem.Users())

	access, err := issuer.IssueAccessToken("alice", true, time.Minute)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefreshToken("alice", time.Minute)
	require.NoError(t, err)
	foreign, err := NewTokenIssuer([]byte("another-secret"), nil).IssueAccessToken("alice", true, time.Minute)
	require.NoError(t, err)
	foreignExpired, err := NewTokenIssuer([]byte("another-secret"), nil).IssueAccessToken("alice", true, -time.Minute)
	require.NoError(t, err)
	ghost, err := issuer.IssueAccessToken("ghost", true, time.Minute)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice", "typ": TokenTypeAccess, "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice", "typ": TokenTypeAccess,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected string
		err      error
	}{
		{name: "other secret", token: foreign, expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "other secret and expired", token: foreignExpired, expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "garbage", token: "not.a.token", expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "empty", token: "", expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "refresh used as access", token: refresh, expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "access used as refresh", token: access, expected: TokenTypeRefresh, err: model.ErrTokenInvalid},
		{name: "alg none", token: noneAlg, expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "missing exp", token: noExpiry, expected: TokenTypeAccess, err: model.ErrTokenInvalid},
		{name: "unknown subject", token: ghost, expected: TokenTypeAccess, err: model.ErrSubjectNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(context.Background(), tc.token, tc.expected)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestTokenValidator_InactiveSubject(t *testing.T) {
	f := newFixture(t)
	token, err := NewTokenIssuer([]byte(testSecret), nil).IssueAccessToken("bob", true, time.Minute)
	require.NoError(t, err)

	f.mem.Users().SetActive(f.bob.ID, false)

	_, err = NewTokenValidator([]byte(testSecret), nil, f.mem.Users()).Validate(context.Background(), token, TokenTypeAccess)
	assert.ErrorIs(t, err, model.ErrSubjectNotFound)
}

func TestTokenIssuer_RefreshCarriesNoFreshness(t *testing.T) {
	t.Parallel()

	token, err := NewTokenIssuer([]byte(testSecret), nil).IssueRefreshToken("alice", time.Minute)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)

	assert.Equal(t, TokenTypeRefresh, claims["typ"])
	assert.Equal(t, "alice", claims["sub"])
	assert.NotContains(t, claims, "fresh")
}
