package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/zams/internal/config"
	"github.com/jask/zams/internal/secrets"
)

func openSettings(t *testing.T, a *App) {
	t.Helper()
	press(t, a, "shift+tab")
	require.Equal(t, pageSettings, a.page)
}

func TestSettingsEditUsername(t *testing.T) {
	a := newTestApp(t)
	openSettings(t, a)

	press(t, a, "enter")
	require.True(t, a.settings.editing)
	require.Equal(t, scopeSettingsEdit, a.scope())
	a.settings.input.SetValue("")
	typeText(t, a, "jdoe")
	press(t, a, "enter")

	assert.False(t, a.settings.editing)
	assert.Equal(t, "jdoe", a.settings.draft.User.Username)
	assert.True(t, a.settings.dirty)
	assert.Contains(t, a.View(), "unsaved changes")
}

func TestSettingsEditCancel(t *testing.T) {
	a := newTestApp(t)
	openSettings(t, a)

	press(t, a, "enter")
	typeText(t, a, "xyz")
	press(t, a, "esc")
	assert.Equal(t, "johndoe", a.settings.draft.User.Username)
	assert.False(t, a.settings.dirty)
}

func TestSettingsToggleAndSave(t *testing.T) {
	a := newTestApp(t)
	openSettings(t, a)

	press(t, a, "l", "l")
	require.Equal(t, tabNotifications, a.settings.tab)
	assert.Contains(t, a.View(), "Receive a weekly summary of your account activity.")

	press(t, a, "j")
	require.False(t, a.settings.draft.Notifications.Push)
	press(t, a, " ")
	require.True(t, a.settings.draft.Notifications.Push)

	run(t, a, press(t, a, "s"))
	assert.Equal(t, "Settings saved", a.status)
	assert.False(t, a.settings.dirty)
	assert.True(t, a.cfg.Notifications.Push)

	loaded, err := config.Load(a.cfgPath)
	require.NoError(t, err)
	assert.True(t, loaded.Notifications.Push)
	assert.True(t, loaded.Notifications.WeeklyDigest)
}

func TestSettingsAPIKeyRevealAndRegenerate(t *testing.T) {
	a := newTestApp(t)
	openSettings(t, a)
	press(t, a, "l")
	require.Equal(t, tabAPI, a.settings.tab)
	assert.Contains(t, a.View(), "(not set)")

	press(t, a, "r")
	key := a.settings.draft.API.Key
	require.True(t, strings.HasPrefix(key, "zams_sk_"))
	require.Len(t, key, len("zams_sk_")+32)
	assert.NotContains(t, a.View(), key)

	press(t, a, "v")
	assert.Contains(t, a.View(), key)

	press(t, a, "r")
	assert.NotEqual(t, key, a.settings.draft.API.Key)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "•••", maskKey("abc"))
	assert.Equal(t, "zams_sk_••", maskKey("zams_sk_ab"))
}

func TestSettingsSaveStoresRegeneratedKey(t *testing.T) {
	a := newTestApp(t)
	a.secrets = secrets.NewStore(t.TempDir())
	openSettings(t, a)
	press(t, a, "l", "r")
	key := a.settings.draft.API.Key

	run(t, a, press(t, a, "s"))
	require.Equal(t, "Settings saved", a.status)

	stored, err := a.secrets.Get(secrets.APIKey)
	require.NoError(t, err)
	assert.Equal(t, key, stored)

	loaded, err := config.Load(a.cfgPath)
	require.NoError(t, err)
	assert.Empty(t, loaded.API.Key)
}
