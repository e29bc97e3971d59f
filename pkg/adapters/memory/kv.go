// Package memory provides a process-local core.KV, used for ephemeral
// stores and as a test double able to fail on demand.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// KV is a map-backed core.KV. Values are copied on the way in and out.
type KV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes int

	getErr error
	setErr error
	block  chan struct{}
}

// NewKV creates an empty KV.
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Get implements core.KV.
func (m *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set implements core.KV.
func (m *KV) Set(ctx context.Context, key string, data []byte) error {
	m.mu.RLock()
	block := m.block
	m.mu.RUnlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = clone(data)
	m.writes++
	return nil
}

// Put stores data under key directly, bypassing failure injection.
func (m *KV) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = clone(data)
}

// FailGet makes every Get return err (nil restores normal behaviour).
func (m *KV) FailGet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailSet makes every Set return err (nil restores normal behaviour).
func (m *KV) FailSet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Block holds every Set until the returned func is called.
func (m *KV) Block() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.block = ch
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.block = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Writes returns how many Set calls succeeded.
func (m *KV) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// ComponentType implements introspection.Component.
func (m *KV) ComponentType() string {
	return "memory"
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ core.KV = (*KV)(nil)
