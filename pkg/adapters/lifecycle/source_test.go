package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, kv core.KV) *core.Store {
	t.Helper()
	s, err := core.NewStore(core.Config{KV: kv, Codec: codec.NewJSON()})
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSource_ReloadsOnEachChange(t *testing.T) {
	kv := memory.NewKV()
	store := newStore(t, kv)

	in := make(chan core.Event)
	src := NewSource(store, in)
	require.NoError(t, src.Start(context.Background()))

	kv.Put(core.DefaultKey, []byte(`[{"id":"a","title":"external"}]`))
	in <- core.Event{Type: core.EventModify, ID: core.DefaultKey}
	e := <-src.Events()
	assert.Equal(t, "MODIFY notes: 1 notes", e.String())
	change, ok := e.(Change)
	require.True(t, ok)
	assert.Equal(t, 1, change.Notes)
	assert.Equal(t, core.EventModify, change.Type)

	kv.Put(core.DefaultKey, []byte(`[]`))
	in <- core.Event{Type: core.EventDelete, ID: core.DefaultKey}
	assert.Equal(t, "DELETE notes: 0 notes", (<-src.Events()).String())
	assert.Equal(t, 0, store.Len())

	close(in)
	_, open := <-src.Events()
	assert.False(t, open)
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := NewSource(newStore(t, memory.NewKV()), make(chan core.Event))
	require.NoError(t, src.Start(ctx))

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source did not stop")
	}
}

func TestSource_StopsWhenStoreCloses(t *testing.T) {
	store := newStore(t, memory.NewKV())
	require.NoError(t, store.Close(context.Background()))

	in := make(chan core.Event, 1)
	in <- core.Event{Type: core.EventModify, ID: core.DefaultKey}
	src := NewSource(store, in)
	require.NoError(t, src.Start(context.Background()))

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source did not stop")
	}
}
