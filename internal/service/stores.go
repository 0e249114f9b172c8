package service

import (
	"context"

	"smart-life-organizer/internal/model"
)

// CredentialStore is the read-only view of users the token core relies on.
// Absent users are reported as model.ErrUserNotFound.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type UserStore interface {
	CredentialStore
	List(ctx context.Context) ([]model.User, error)
	CreateWithSettings(ctx context.Context, user model.User, settings model.UserSettings) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type SettingsStore interface {
	FindByUserID(ctx context.Context, userID int64) (model.UserSettings, error)
	Update(ctx context.Context, settings model.UserSettings) (model.UserSettings, error)
}

type ContentStore interface {
	List(ctx context.Context) ([]model.Content, error)
	FindByID(ctx context.Context, id int64) (model.Content, error)
	FindBySlug(ctx context.Context, slug string) (model.Content, error)
	Create(ctx context.Context, content model.Content) (model.Content, error)
	Update(ctx context.Context, content model.Content) (model.Content, error)
	Delete(ctx context.Context, id int64) error
}
