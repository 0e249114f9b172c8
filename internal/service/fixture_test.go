package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smart-life-organizer/internal/config"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/repository"
)

const testSecret = "test-secret-key"

type fixture struct {
	mem      *repository.Memory
	hasher   *PasswordHasher
	auth     *AuthService
	users    *UserService
	content  *ContentService
	alice    model.User
	bob      model.User
	root     model.User
	password string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	mem := repository.NewMemory()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	cfg := &config.Config{
		SecretKey:                 testSecret,
		AccessTokenExpireMinutes:  30,
		RefreshTokenExpireMinutes: 600,
		DefaultPhoneRegion:        "SA",
	}

	f := &fixture{
		mem:      mem,
		hasher:   hasher,
		auth:     NewAuthService(cfg, mem.Users(), hasher, time.Now, logger),
		users:    NewUserService(mem.Users(), mem.Settings(), hasher, cfg.DefaultPhoneRegion, logger),
		content:  NewContentService(mem.Content(), logger),
		password: "s3cret-pass",
	}

	f.alice = f.createUser(t, "alice", false)
	f.bob = f.createUser(t, "bob", false)
	f.root = f.createUser(t, "root", true)
	return f
}

func (f *fixture) createUser(t *testing.T, username string, superuser bool) model.User {
	t.Helper()

	user, err := f.users.Create(context.Background(), model.CreateUserRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  f.password,
		Superuser: superuser,
	})
	require.NoError(t, err)
	return user
}

func principal(user model.User, fresh bool) *model.Principal {
	return &model.Principal{User: user, Fresh: fresh}
}
