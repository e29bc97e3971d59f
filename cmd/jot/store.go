package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/jot"
)

// closeTimeout bounds how long a command waits for pending writes on exit.
const closeTimeout = 10 * time.Second

// resolveDir picks the data directory: --dir, then config, then the default lookup.
func resolveDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	if cfg != nil && cfg.Data.Dir != "" {
		return cfg.Data.Dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get CWD: %w", err)
	}
	return jot.DefaultDataDir(cwd)
}

func storeOptions(extra ...jot.Option) []jot.Option {
	opts := []jot.Option{jot.WithLogger(slog.Default())}
	if cfg != nil {
		opts = append(opts,
			jot.WithFormat(cfg.Data.Format),
			jot.WithKey(cfg.Data.Key),
			jot.WithEventBuffer(cfg.Events.Buffer),
		)
	}
	if format != "" {
		opts = append(opts, jot.WithFormat(format))
	}
	if key != "" {
		opts = append(opts, jot.WithKey(key))
	}
	return append(opts, extra...)
}

// openStore opens the configured store. The caller must closeStore it.
func openStore(extra ...jot.Option) (*jot.Store, error) {
	if ephemeral || (cfg != nil && cfg.Data.Ephemeral) {
		return jot.NewMemory(storeOptions(extra...)...)
	}

	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	store, err := jot.New(dir, storeOptions(extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes in %s: %w", dir, err)
	}
	return store, nil
}

// closeStore flushes pending writes and releases the store.
// A failed write is reported, since the process is about to exit.
func closeStore(store *jot.Store) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	flushErr := store.Flush(ctx)
	if err := store.Close(ctx); err != nil {
		return err
	}
	if flushErr != nil {
		return fmt.Errorf("failed to save notes: %w", flushErr)
	}
	return nil
}

// withStore runs fn against an open store and always closes it.
func withStore(fn func(store *jot.Store) error, extra ...jot.Option) (err error) {
	store, err := openStore(extra...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(store); err == nil {
			err = cerr
		}
	}()
	return fn(store)
}
