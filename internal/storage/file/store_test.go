package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rolodex/internal/model"
)

func TestNewStore(t *testing.T) {
	t.Run("creates nested dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		s, err := NewStore(dir)
		require.NoError(t, err)
		require.NotNil(t, s)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty dir", func(t *testing.T) {
		s, err := NewStore("  ")
		assert.Nil(t, s)
		assert.Error(t, err)
	})
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, "contacts")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Set(ctx, "contacts", []byte(`[{"id":1,"name":"Ann","email":"ann@x.com"}]`)))
	require.NoError(t, s.Set(ctx, "contacts", []byte(`[]`)))

	v, err := s.Get(ctx, "contacts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	onDisk, err := os.ReadFile(filepath.Join(dir, "contacts.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), onDisk)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.Get(ctx, key)
		assert.Error(t, err, key)
		assert.NotErrorIs(t, err, model.ErrNotFound, key)
		assert.Error(t, s.Set(ctx, key, []byte("x")), key)
	}
}

func TestStore_Ping(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	s, err := NewStore(dir)
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}
