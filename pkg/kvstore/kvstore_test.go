package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	stores := map[string]Store{
		"memory":  NewMemory(),
		"gocache": NewGoCache(),
	}
	file, err := NewFile(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	stores["file"] = file

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "greeting", "hello"))
			v, ok, err := store.Get(ctx, "greeting")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "hello", v)

			require.NoError(t, store.Set(ctx, "greeting", "goodbye"))
			v, _, err = store.Get(ctx, "greeting")
			require.NoError(t, err)
			assert.Equal(t, "goodbye", v)

			require.NoError(t, store.Delete(ctx, "greeting"))
			_, ok, err = store.Get(ctx, "greeting")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting an absent key is not an error.
			require.NoError(t, store.Delete(ctx, "missing"))
		})
	}
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "appointments", `[{"id":"apt_1"}]`))
	require.NoError(t, first.Set(ctx, "token", "tok_abc"))

	second, err := NewFile(path)
	require.NoError(t, err)

	v, ok, err := second.Get(ctx, "appointments")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"apt_1"}]`, v)

	v, ok, err = second.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok_abc", v)
}

func TestFileRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path)
	assert.Error(t, err)
}

func TestFileEmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := NewFile(path)
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}
