package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings(4)
	assert.Equal(t, int64(4), s.UserID)
	assert.Equal(t, ThemeSystem, s.Theme)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "UTC", s.TimeZone)
	assert.True(t, s.AIAssistantEnabled)
	assert.NotNil(t, s.NotificationPreferences)
}

func TestSettingsPatch(t *testing.T) {
	t.Parallel()

	var patch SettingsPatch
	require.NoError(t, json.Unmarshal([]byte(`{"theme":"dark","ai_assistant_enabled":false,"notification_preferences":null}`), &patch))
	require.NoError(t, patch.Validate())

	s := DefaultSettings(1)
	s.NotificationPreferences["email"] = true
	patch.Apply(&s)

	assert.Equal(t, ThemeDark, s.Theme)
	assert.False(t, s.AIAssistantEnabled)
	assert.Equal(t, "UTC", s.TimeZone)
	assert.Equal(t, map[string]any{"email": true}, s.NotificationPreferences)
}

func TestSettingsPatchValidate(t *testing.T) {
	t.Parallel()

	neon := "neon"
	assert.Error(t, SettingsPatch{Theme: &neon}.Validate())

	zone := "Mars/Base"
	assert.Error(t, SettingsPatch{TimeZone: &zone}.Validate())

	lang := "e"
	assert.Error(t, SettingsPatch{Language: &lang}.Validate())

	riyadh := "Asia/Riyadh"
	assert.NoError(t, SettingsPatch{TimeZone: &riyadh}.Validate())
}
