package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// TimeZones lists the zones a user may pick for their settings.
var TimeZones = []interface{}{
	"UTC", "GMT", "America/New_York", "Europe/London", "Asia/Tokyo",
	"Australia/Sydney", "Pacific/Auckland", "Africa/Cairo", "Asia/Riyadh",
}

type UserSettings struct {
	ID                      int64          `json:"settings_id"`
	UserID                  int64          `json:"user_id"`
	Theme                   string         `json:"theme"`
	NotificationPreferences map[string]any `json:"notification_preferences"`
	Language                string         `json:"language"`
	TimeZone                string         `json:"time_zone"`
	AIAssistantEnabled      bool           `json:"ai_assistant_enabled"`
}

// DefaultSettings returns the settings a freshly created user starts with.
func DefaultSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:                  userID,
		Theme:                   ThemeSystem,
		NotificationPreferences: map[string]any{},
		Language:                "en",
		TimeZone:                "UTC",
		AIAssistantEnabled:      true,
	}
}

// SettingsPatch lists every settings field a caller may change.
type SettingsPatch struct {
	Theme                   *string         `json:"theme"`
	NotificationPreferences *map[string]any `json:"notification_preferences"`
	Language                *string         `json:"language"`
	TimeZone                *string         `json:"time_zone"`
	AIAssistantEnabled      *bool           `json:"ai_assistant_enabled"`
}

func (p SettingsPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Theme, validation.NilOrNotEmpty, validation.In(ThemeLight, ThemeDark, ThemeSystem)),
		validation.Field(&p.Language, validation.NilOrNotEmpty, validation.Length(2, 10)),
		validation.Field(&p.TimeZone, validation.NilOrNotEmpty, validation.In(TimeZones...)),
	)
}

func (p SettingsPatch) Apply(s *UserSettings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.NotificationPreferences != nil {
		prefs := *p.NotificationPreferences
		if prefs == nil {
			prefs = map[string]any{}
		}
		s.NotificationPreferences = prefs
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.TimeZone != nil {
		s.TimeZone = *p.TimeZone
	}
	if p.AIAssistantEnabled != nil {
		s.AIAssistantEnabled = *p.AIAssistantEnabled
	}
}
