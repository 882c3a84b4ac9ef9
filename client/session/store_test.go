package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/util/model"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	snap := Snapshot{Token: "abc", User: model.User{ID: "1", Username: "ana", Role: model.Admin}}
	require.NoError(t, store.Save(ctx, snap))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, got)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore("/tmp/x/session.json", "trabajo")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x/session-trabajo.json", s.(*FileStore).path)

	s, err = OpenStore("redis://localhost:6379/0", "trabajo")
	require.NoError(t, err)
	assert.Equal(t, "momsdigitales:session:trabajo", s.(*RedisStore).key)

	_, err = OpenStore("redis://localhost:6379/abc", "")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("MOMS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MOMS_TEST_REDIS_URL no definido")
	}
	store, err := NewRedisStore(url, "test")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	snap := Snapshot{Token: "abc", User: model.User{ID: "1", Username: "ana"}}
	require.NoError(t, store.Save(ctx, snap))
	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, got)

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
