package prefs

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	store, err := gdata.Open(gdata.Config{AppName: "echorift_test"})
	require.NoError(t, err)
	return store
}

func TestDefaultsWhenNothingSaved(t *testing.T) {
	m := New(openStore(t), quietLogger())
	require.NoError(t, m.Load())
	assert.Equal(t, Default(), m.Get())
}

func TestUpdatePersists(t *testing.T) {
	store := openStore(t)
	m := New(store, quietLogger())

	require.NoError(t, m.Update(func(p *Prefs) {
		p.LastVariant = "echorift_surge"
		p.Sound = false
	}))

	reloaded := New(store, quietLogger())
	require.NoError(t, reloaded.Load())
	got := reloaded.Get()
	assert.Equal(t, "echorift_surge", got.LastVariant)
	assert.False(t, got.Sound)
	assert.Equal(t, "normal", got.Difficulty)
}

func TestCorruptEntryFallsBack(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveObjectProp(prefsObject, prefsProperty, []byte("sound: [")))

	m := New(store, quietLogger())
	assert.Error(t, m.Load())
	assert.Equal(t, Default(), m.Get())
}

func TestMemoryOnly(t *testing.T) {
	m := New(nil, quietLogger())
	require.NoError(t, m.Load())
	require.NoError(t, m.Update(func(p *Prefs) { p.Difficulty = "hard" }))
	assert.Equal(t, "hard", m.Get().Difficulty)
}
