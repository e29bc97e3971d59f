package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// Config holds the configuration for the filesystem KV adapter.
type Config struct {
	Dir       string
	Ext       string // Appended to every key to build the file name (e.g. ".json").
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
	// Debounce groups bursts of filesystem events per key. Zero means 50ms.
	Debounce time.Duration
}

// KV implements core.KV with one file per key inside a directory.
// Writes are atomic: a reader sees either the old or the new blob.
type KV struct {
	config Config

	mu            sync.RWMutex
	watcherActive bool
	writes        int
	lastWrite     *time.Time
}

// NewKV creates a new filesystem-backed KV.
func NewKV(config Config) *KV {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Ext != "" && !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &KV{config: config}
}

// Dir returns the directory holding the files.
func (k *KV) Dir() string {
	return k.config.Dir
}

// Initialize ensures the directory exists.
// In read-only mode nothing is created.
func (k *KV) Initialize(ctx context.Context) error {
	if k.config.MustExist || k.config.ReadOnly {
		info, err := os.Stat(k.config.Dir)
		if os.IsNotExist(err) {
			if k.config.ReadOnly && !k.config.MustExist {
				return nil
			}
			return fmt.Errorf("data directory does not exist: %s", k.config.Dir)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", k.config.Dir)
		}
		return nil
	}

	if err := os.MkdirAll(k.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Path returns the file backing key.
func (k *KV) Path(key string) (string, error) {
	if key == "" ||
		strings.ContainsAny(key, `/\`) ||
		!filepath.IsLocal(key) ||
		strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(k.config.Dir, key+k.config.Ext), nil
}

// Get reads the blob stored under key. A missing file is reported as absent.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	path, err := k.Path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	k.config.Logger.Debug("read blob", "key", key, "path", path, "bytes", len(data))
	return data, true, nil
}

// Set atomically replaces the blob stored under key.
func (k *KV) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if k.config.ReadOnly {
		return core.ErrReadOnly
	}

	path, err := k.Path(key)
	if err != nil {
		return err
	}

	k.config.Logger.Debug("writing blob", "key", key, "path", path, "bytes", len(data))
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return err
	}

	now := time.Now()
	k.mu.Lock()
	k.writes++
	k.lastWrite = &now
	k.mu.Unlock()
	return nil
}

// keyOf maps a file name in the directory back to its key.
func (k *KV) keyOf(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || strings.HasPrefix(name, ".") {
		return "", false
	}
	if k.config.Ext == "" {
		return name, true
	}
	key, ok := strings.CutSuffix(name, k.config.Ext)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

var _ core.KV = (*KV)(nil)
var _ core.Initializer = (*KV)(nil)
var _ core.Watchable = (*KV)(nil)
