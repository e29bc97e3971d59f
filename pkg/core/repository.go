package core

import "context"

// KV defines the contract for the durable byte store backing a Store.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism (files, memory, a host-provided store).
type KV interface {
	// Get returns the bytes stored under key.
	// A missing key is reported as ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set replaces the bytes stored under key.
	Set(ctx context.Context, key string, data []byte) error
}

// Initializer is implemented by adapters that need setup before use
// (e.g. creating a directory).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by adapters able to report changes made to
// keys by something other than this process.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Codec converts a whole note collection to and from bytes.
type Codec interface {
	Name() string
	Encode(notes []Note) ([]byte, error)
	Decode(data []byte) ([]Note, error)
}
