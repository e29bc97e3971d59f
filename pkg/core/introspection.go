package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key            string     `json:"key"`
	Codec          string     `json:"codec"`
	StorageType    string     `json:"storage_type"`
	Notes          int        `json:"notes"`
	Loaded         bool       `json:"loaded"`
	LoadError      string     `json:"load_error,omitempty"`
	Closed         bool       `json:"closed"`
	Subscribers    int        `json:"subscribers"`
	DroppedEvents  int        `json:"dropped_events"`
	Writes         int        `json:"writes"`
	FailedWrites   int        `json:"failed_writes"`
	Coalesced      int        `json:"coalesced_writes"`
	WritePending   bool       `json:"write_pending"`
	LastWriteError string     `json:"last_write_error,omitempty"`
	LastWriteAt    *time.Time `json:"last_write_at,omitempty"`
	// Storage is the state of the KV adapter, when it exposes one.
	Storage        any        `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Key:         s.key,
		Codec:       s.codec.Name(),
		StorageType: "kv",
		Notes:       len(s.notes),
		Loaded:      s.loaded,
		Closed:      s.closed,
	}
	if s.loadErr != nil {
		state.LoadError = s.loadErr.Error()
	}
	s.mu.RUnlock()

	if comp, ok := s.kv.(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}
	if intro, ok := s.kv.(introspection.Introspectable); ok {
		state.Storage = intro.State()
	}

	state.Subscribers, state.DroppedEvents = s.broker.stats()

	s.wmu.Lock()
	state.Writes = s.stats.writes
	state.FailedWrites = s.stats.failures
	state.Coalesced = s.stats.coalesced
	state.WritePending = s.queued != nil
	state.LastWriteAt = s.stats.lastAt
	if s.stats.lastErr != nil {
		state.LastWriteError = s.stats.lastErr.Error()
	}
	s.wmu.Unlock()

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
