package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var store MemoryStore

	st, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "#00FF00", st.TodoColor)

	require.NoError(t, store.Save(ctx, Settings{TodoColor: "#ABCDEF"}))
	st, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "#ABCDEF", st.TodoColor)

	require.NoError(t, store.Save(ctx, Settings{}))
	st, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, DefaultColor, st.TodoColor, "empty colour falls back to the default")
}

func TestMemoryStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var store MemoryStore
	require.ErrorIs(t, store.Save(ctx, Settings{TodoColor: "#ABCDEF"}), context.Canceled)
	st, err := store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, DefaultColor, st.TodoColor)
}

func TestFileStoreDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data.yaml"))

	st, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "#00FF00", st.TodoColor)
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"data.yaml", "data.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			store := NewFileStore(path)
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, Settings{TodoColor: "#ABCDEF"}))

			st, err := store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, "#ABCDEF", st.TodoColor)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "todoColor")
			assert.Contains(t, string(data), "#ABCDEF")
		})
	}
}

func TestFileStorePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("todoColor: '#111111'\ntheme: dark\n"), 0644))

	store := NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), Settings{TodoColor: "#222222"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: dark")
	assert.Contains(t, string(data), "#222222")
	assert.NotContains(t, string(data), "#111111")
}

func TestFileStoreEmptyValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("todoColor: ''\n"), 0644))

	st, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultColor, st.TodoColor)
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("todoColor: [unterminated\n"), 0644))

	st, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	require.Equal(t, DefaultColor, st.TodoColor)
}

func TestFileStoreEnvOverride(t *testing.T) {
	t.Setenv("TODOMARK_TODOCOLOR", "#123456")
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("todoColor: '#111111'\n"), 0644))

	st, err := NewFileStore(path, WithEnvPrefix("TODOMARK_")).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "#123456", st.TodoColor)

	st, err = NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "#111111", st.TodoColor)
}

func TestWatcherSignalsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	store := NewFileStore(path)

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	changes, err := w.Start()
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NoError(t, store.Save(context.Background(), Settings{TodoColor: "#ABCDEF"}))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}

func TestWatcherStopTwice(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "data.yaml"), time.Millisecond)
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NotPanics(t, func() { _ = w.Stop() })
}
