package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// KVState exposes internal state for observability.
type KVState struct {
	Dir           string     `json:"dir"`
	Ext           string     `json:"ext"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (k *KV) State() any {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return KVState{
		Dir:           k.config.Dir,
		Ext:           k.config.Ext,
		ReadOnly:      k.config.ReadOnly,
		WatcherActive: k.watcherActive,
		Writes:        k.writes,
		LastWrite:     k.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (k *KV) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*KV)(nil)
var _ introspection.Component = (*KV)(nil)

func (k *KV) setWatcherActive(active bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.watcherActive = active
}
