package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"smart-life-organizer/internal/authz"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/pkg/apierror"
)

type UserService struct {
	users       UserStore
	settings    SettingsStore
	hasher      *PasswordHasher
	phoneRegion string
	logger      *slog.Logger
}

func NewUserService(users UserStore, settings SettingsStore, hasher *PasswordHasher, phoneRegion string, logger *slog.Logger) *UserService {
	return &UserService{
		users:       users,
		settings:    settings,
		hasher:      hasher,
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get looks a user up by numeric id first and falls back to the username.
func (s *UserService) Get(ctx context.Context, idOrUsername string) (model.User, error) {
	if id, err := strconv.ParseInt(idOrUsername, 10, 64); err == nil {
		user, err := s.users.FindByID(ctx, id)
		if !errors.Is(err, model.ErrUserNotFound) {
			return user, err
		}
	}
	return s.users.FindByUsername(ctx, idOrUsername)
}

// Create stores a new active user together with default settings.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(s.phoneRegion); err != nil {
		return model.User{}, ValidationError(err)
	}

	_, err := s.users.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return model.User{}, apierror.Wrap(model.ErrUserAlreadyExists, "ALREADY_EXISTS", "Username already exists", http.StatusUnprocessableEntity)
	case !errors.Is(err, model.ErrUserNotFound):
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		Gender:         req.Gender,
		ProfilePicture: req.ProfilePicture,
		IsActive:       true,
		Superuser:      req.Superuser,
	}

	created, err := s.users.CreateWithSettings(ctx, user, model.DefaultSettings(0))
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("user created", "user_id", created.ID, "username", created.Username, "superuser", created.Superuser)
	return created, nil
}

// ChangePassword replaces the password of user id. The caller must own the
// account or be an admin.
func (s *UserService) ChangePassword(ctx context.Context, caller *model.Principal, id int64, req model.PasswordPatchRequest) (model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if d := authz.OwnerOrAdmin(caller, user.ID); !d.Allowed() {
		if !errors.Is(d.Err(), model.ErrForbidden) {
			return model.User{}, d.Err()
		}
		return model.User{}, apierror.Wrap(d.Err(), "FORBIDDEN", "You can't update this user password", http.StatusForbidden)
	}

	if err := req.Validate(); err != nil {
		return model.User{}, ValidationError(err)
	}
	if req.Password != req.PasswordConfirm {
		return model.User{}, model.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return model.User{}, err
	}

	user.PasswordHash = hash
	s.logger.Info("password changed", "user_id", user.ID, "by", caller.User.Username)
	return user, nil
}

// Delete removes user id. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, caller *model.Principal, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if caller != nil && caller.User.ID == user.ID {
		return model.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", user.ID, "username", user.Username)
	return nil
}

func (s *UserService) Settings(ctx context.Context, caller *model.Principal, userID int64) (model.UserSettings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.UserSettings{}, err
	}
	if d := authz.OwnerOrAdmin(caller, user.ID); !d.Allowed() {
		return model.UserSettings{}, d.Err()
	}

	return s.settings.FindByUserID(ctx, user.ID)
}

func (s *UserService) PatchSettings(ctx context.Context, caller *model.Principal, userID int64, patch model.SettingsPatch) (model.UserSettings, error) {
	current, err := s.Settings(ctx, caller, userID)
	if err != nil {
		return model.UserSettings{}, err
	}

	if err := patch.Validate(); err != nil {
		return model.UserSettings{}, ValidationError(err)
	}

	patch.Apply(&current)
	return s.settings.Update(ctx, current)
}

// SeedAdmin creates the initial superuser when the user table is empty. It
// reports whether a user was created.
func (s *UserService) SeedAdmin(ctx context.Context, username string, email string, password string) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, model.CreateUserRequest{
		Username:  username,
		Email:     email,
		Password:  password,
		Superuser: true,
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
