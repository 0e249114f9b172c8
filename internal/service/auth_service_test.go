package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-life-organizer/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Login(ctx, "alice", f.password)
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	p, err := f.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.User.Username)
	assert.True(t, p.Fresh)

	_, err = f.auth.Authenticate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	f.mem.Users().SetActive(f.bob.ID, false)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "nope"},
		{name: "unknown user", username: "mallory", password: f.password},
		{name: "inactive user", username: "bob", password: f.password},
		{name: "username is case sensitive", username: "Alice", password: f.password},
		{name: "empty password", username: "alice", password: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Login(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, model.ErrAuthentication)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Login(ctx, "alice", f.password)
	require.NoError(t, err)

	refreshed, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	p, err := f.auth.Authenticate(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, p.User.ID)
	assert.False(t, p.Fresh)

	t.Run("old refresh token still works", func(t *testing.T) {
		_, err := f.auth.Refresh(ctx, pair.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := f.auth.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("deleted subject", func(t *testing.T) {
		bobPair, err := f.auth.Login(ctx, "bob", f.password)
		require.NoError(t, err)
		require.NoError(t, f.users.Delete(ctx, principal(f.root, true), f.bob.ID))

		_, err = f.auth.Refresh(ctx, bobPair.RefreshToken)
		assert.ErrorIs(t, err, model.ErrSubjectNotFound)
	})
}
