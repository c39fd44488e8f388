package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/domain/model"
)

type stubLoader struct {
	snapshot *Snapshot
	err      error
}

func (l stubLoader) Load(context.Context) (*Snapshot, error) { return l.snapshot, l.err }
func (l stubLoader) Name() string                            { return "stub" }

func TestStore_Reload(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, 0, store.Snapshot().Len())

	next, err := NewSnapshot("stub", sampleData())
	require.NoError(t, err)

	require.NoError(t, store.Reload(context.Background(), stubLoader{snapshot: next}))
	assert.Same(t, next, store.Snapshot())

	_, ok := store.Material("Sugar")
	assert.True(t, ok)
	assert.Len(t, store.Materials(), 2)
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	initial, err := NewSnapshot("initial", sampleData())
	require.NoError(t, err)
	store := NewStore(initial)

	err = store.Reload(context.Background(), stubLoader{err: errors.New("disk on fire")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stub")
	assert.Same(t, initial, store.Snapshot())
}

func TestStore_ReadersKeepTheirSnapshot(t *testing.T) {
	first, err := NewSnapshot("first", sampleData())
	require.NoError(t, err)
	store := NewStore(first)

	held := store.Snapshot()
	store.Swap(Empty())

	_, ok := held.Material("Sugar")
	assert.True(t, ok, "a held snapshot survives a swap")
	_, ok = store.Material("Sugar")
	assert.False(t, ok)
}

func TestStore_ConcurrentReadsDuringSwaps(t *testing.T) {
	store := NewStore(nil)
	snapshots := make([]*Snapshot, 0, 4)
	for i := 0; i < 4; i++ {
		s, err := NewSnapshot("gen", Data{Materials: []model.Material{{Name: "Sugar"}}})
		require.NoError(t, err)
		snapshots = append(snapshots, s)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_ = store.Snapshot().Materials()
			}
		}()
	}
	for _, s := range snapshots {
		store.Swap(s)
	}
	wg.Wait()

	assert.Same(t, snapshots[len(snapshots)-1], store.Snapshot())
}
