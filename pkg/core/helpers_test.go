package core

import (
	"context"
	"encoding/json"
	"sync"
)

// mapKV and testCodec keep in-package tests free of adapter imports.
type mapKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string][]byte)}
}

func (m *mapKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *mapKV) decoded() []Note {
	data, _, _ := m.Get(context.Background(), DefaultKey)
	notes, _ := testCodec{}.Decode(data)
	return notes
}

type testCodec struct{}

func (testCodec) Name() string { return "test" }

func (testCodec) Encode(notes []Note) ([]byte, error) { return json.Marshal(notes) }

func (testCodec) Decode(data []byte) ([]Note, error) {
	var notes []Note
	if len(data) == 0 {
		return notes, nil
	}
	err := json.Unmarshal(data, &notes)
	return notes, err
}
