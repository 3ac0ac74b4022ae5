package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func openTestPrefs(t *testing.T) *Prefs {
	t.Helper()
	p, err := Open(filepath.Join(t.TempDir(), "prefs.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestSetGetDelete(t *testing.T) {
	p := openTestPrefs(t)

	_, ok := p.Get(KeyEmail)
	assert.False(t, ok)

	require.NoError(t, p.Set(KeyEmail, "angler@example.com"))
	v, ok := p.Get(KeyEmail)
	assert.True(t, ok)
	assert.Equal(t, "angler@example.com", v)

	require.NoError(t, p.Set(KeyEmail, "other@example.com"))
	v, _ = p.Get(KeyEmail)
	assert.Equal(t, "other@example.com", v)

	require.NoError(t, p.Delete(KeyEmail))
	_, ok = p.Get(KeyEmail)
	assert.False(t, ok)

	// deleting again stays silent
	require.NoError(t, p.Delete(KeyEmail))
}

func TestBoolFlags(t *testing.T) {
	p := openTestPrefs(t)

	assert.False(t, p.GetBool(KeyOnboarding))

	require.NoError(t, p.SetBool(KeyOnboarding, true))
	assert.True(t, p.GetBool(KeyOnboarding))

	require.NoError(t, p.SetBool(KeyOnboarding, false))
	assert.False(t, p.GetBool(KeyOnboarding))

	require.NoError(t, p.Set(KeyOnboarding, "yes"))
	assert.False(t, p.GetBool(KeyOnboarding), "only the literal true reads as set")
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	p, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Set(KeyClientID, "client-1"))
	require.NoError(t, p.Close())

	p, err = Open(path, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	v, ok := p.Get(KeyClientID)
	assert.True(t, ok)
	assert.Equal(t, "client-1", v)
}

func TestGetLogsQueryFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, err := Open(filepath.Join(t.TempDir(), "prefs.db"), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, p.Set(KeyEmail, "a@b.c"))
	require.NoError(t, p.Close())

	// a closed database reads as absent, but the failure is logged
	_, ok := p.Get(KeyEmail)
	assert.False(t, ok)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "read pref", entry.Message)
	assert.Equal(t, KeyEmail, entry.ContextMap()["key"])
}
