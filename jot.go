package jot

import (
	"log/slog"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note entity.
type Note = core.Note

// Patch is a partial update applied by Store.Update.
type Patch = core.Patch

// Store is the owned, in-memory note collection with background persistence.
type Store = core.Store

// Event is a notification published by a Store.
type Event = core.Event

// Write is the completion handle of a background write.
type Write = core.Write

// SetTitle returns a Patch that only replaces the title.
func SetTitle(title string) Patch {
	return core.SetTitle(title)
}

// SetContent returns a Patch that only replaces the content.
func SetContent(content string) Patch {
	return core.SetContent(content)
}

// --- Configuration ---

// Option defines a functional option for configuring a Store.
type Option = platform.Option

// WithLogger sets the logger for the store and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKV allows injecting a custom storage adapter.
func WithKV(kv core.KV) Option {
	return platform.WithKV(kv)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithCodec sets the serializer of the collection.
func WithCodec(c core.Codec) Option {
	return platform.WithCodec(c)
}

// WithFormat selects the serializer by name ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithKey sets the storage key holding the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithIDGenerator replaces the default UUIDv7 id generator.
func WithIDGenerator(gen func() string) Option {
	return platform.WithIDGenerator(gen)
}

// WithClock replaces time.Now for note timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithEventBuffer sets the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithMustExist ensures the data directory already exists.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the store without ever writing to storage.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithWatcherErrorHandler receives runtime failures of Store.Watch.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the store kept in dir and loads its notes.
// The caller owns the store and must Close it.
func New(dir string, opts ...Option) (*Store, error) {
	return platform.New(dir, opts...)
}

// NewMemory opens a store that lives only as long as the process.
func NewMemory(opts ...Option) (*Store, error) {
	return platform.New("", append(opts, platform.WithKV(memory.NewKV()))...)
}

// Init prepares the data directory without opening a store.
func Init(dir string, opts ...Option) (string, error) {
	return platform.Init(dir, opts...)
}

// --- Safety & Utils ---

// ResolveDataDir determines the directory a store actually uses.
func ResolveDataDir(userPath string, sandbox bool) string {
	return platform.ResolveDataDir(userPath, sandbox)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding a .jot folder.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// DefaultDataDir picks the data directory when none is configured.
func DefaultDataDir(cwd string) (string, error) {
	return platform.DefaultDataDir(cwd)
}
