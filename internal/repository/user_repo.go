package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"smart-life-organizer/internal/database"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/pkg/apierror"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, phone_number,
	gender, profile_picture, is_active, superuser, created_at, last_login`

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateWithSettings inserts the user and its settings row in one transaction.
func (r *UserRepository) CreateWithSettings(ctx context.Context, u model.User, s model.UserSettings) (model.User, error) {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password_hash, first_name, last_name, phone_number,
			                    gender, profile_picture, is_active, superuser)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id, created_at`,
			u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber,
			u.Gender, u.ProfilePicture, u.IsActive, u.Superuser).
			Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			return err
		}

		s.UserID = u.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO user_settings (user_id, theme, notification_preferences, language, time_zone, ai_assistant_enabled)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.UserID, s.Theme, s.NotificationPreferences, s.Language, s.TimeZone, s.AIAssistantEnabled)
		return err
	})

	if database.IsUniqueViolation(err) {
		return model.User{}, duplicateUser(database.ConstraintName(err) == emailConstraint)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return model.ErrUserHasContent
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Gender, &u.ProfilePicture, &u.IsActive, &u.Superuser, &u.CreatedAt, &u.LastLogin)
	return u, err
}

const emailConstraint = "users_email_key"

func duplicateUser(email bool) error {
	message := "Username already exists"
	if email {
		message = "Email already exists"
	}
	return apierror.Wrap(model.ErrUserAlreadyExists, "ALREADY_EXISTS", message, http.StatusUnprocessableEntity)
}
