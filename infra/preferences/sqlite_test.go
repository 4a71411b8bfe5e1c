package preferences

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/core/factory"
	corepref "github.com/kilianp07/predtrack/core/preferences"
)

func TestSQLiteStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, ok, err := store.Get(ctx, corepref.KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, corepref.KeyTheme, "dark"))
	require.NoError(t, store.Set(ctx, corepref.KeyTheme, "light"))
	v, ok, err := store.Get(ctx, corepref.KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	svc := func() *corepref.Service {
		s, err := corepref.NewStore(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": path}})
		require.NoError(t, err)
		return corepref.NewService(s, corepref.ThemeLight)
	}

	first := svc()
	next, err := first.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, corepref.ThemeDark, next)
	require.NoError(t, first.Close())

	second := svc()
	defer func() { _ = second.Close() }()
	th, err := second.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, corepref.ThemeDark, th)
}

func TestSQLiteFactoryRequiresPath(t *testing.T) {
	_, err := corepref.NewStore(factory.ModuleConfig{Type: "sqlite"})
	assert.Error(t, err)

	s, err := corepref.NewStore(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.IsType(t, &corepref.MemoryStore{}, s)
}
