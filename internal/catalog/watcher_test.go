package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitReload(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Reloads():
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"materials":[{"name":"Sugar"}]}`), 0o600))

	loader := NewFileLoader(path)
	initial, err := loader.Load(context.Background())
	require.NoError(t, err)
	store := NewStore(initial)

	w, err := NewWatcher(store, loader, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte(`{"materials":[{"name":"Sugar"},{"name":"Citric acid"}]}`), 0o600))
	waitReload(t, w)

	assert.Equal(t, 2, store.Snapshot().Len())
	_, ok := store.Material("Citric acid")
	assert.True(t, ok)
}

func TestWatcher_InvalidFileKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"materials":[{"name":"Sugar"}]}`), 0o600))

	loader := NewFileLoader(path)
	initial, err := loader.Load(context.Background())
	require.NoError(t, err)
	store := NewStore(initial)

	w, err := NewWatcher(store, loader, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer func() { assert.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte(`{"materials":[`), 0o600))
	waitReload(t, w)

	assert.Same(t, initial, store.Snapshot())
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "nope", "catalog.json"))
	_, err := NewWatcher(NewStore(nil), loader)
	assert.Error(t, err)
}
