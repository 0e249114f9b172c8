package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"smart-life-organizer/internal/database"
	"smart-life-organizer/internal/model"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) FindByUserID(ctx context.Context, userID int64) (model.UserSettings, error) {
	var s model.UserSettings
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, user_id, theme, notification_preferences, language, time_zone, ai_assistant_enabled
		 FROM user_settings WHERE user_id = $1`, userID).
		Scan(&s.ID, &s.UserID, &s.Theme, &s.NotificationPreferences, &s.Language, &s.TimeZone, &s.AIAssistantEnabled)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.UserSettings{}, model.ErrSettingsNotFound
	}
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("find settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s model.UserSettings) (model.UserSettings, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE user_settings
		 SET theme = $2, notification_preferences = $3, language = $4, time_zone = $5, ai_assistant_enabled = $6
		 WHERE user_id = $1`,
		s.UserID, s.Theme, s.NotificationPreferences, s.Language, s.TimeZone, s.AIAssistantEnabled)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.UserSettings{}, model.ErrSettingsNotFound
	}
	return s, nil
}
