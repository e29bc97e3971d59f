package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// Watch reports changes to keys matching pattern (a doublestar glob over
// key names, e.g. "notes" or "*") made by anyone, this process included.
// The channel is closed when ctx is done.
func (k *KV) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(k.config.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", k.config.Dir, err)
	}

	events := make(chan core.Event, 16)
	w := &watchWorker{
		kv:        k,
		pattern:   pattern,
		events:    events,
		watcher:   watcher,
		debouncer: newDebouncer(k.config.Debounce),
	}
	k.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		k.reportError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

type watchWorker struct {
	kv        *KV
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.kv.setWatcherActive(false)
	defer w.watcher.Close()

	err := w.loop(ctx)

	// Pending timers must finish before the events channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.kv.reportError(err)
		}
	}
}

func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	key, ok := w.kv.keyOf(filepath.Base(event.Name))
	if !ok {
		return
	}
	if match, err := doublestar.Match(w.pattern, key); err != nil || !match {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	w.kv.config.Logger.Debug("storage changed", "key", key, "op", event.Op.String())
	w.debouncer.add(core.Event{
		Type:      eType,
		ID:        key,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		defer func() {
			// The channel may already be closed while stopping.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	default:
		return ""
	}
}

func (k *KV) reportError(err error) {
	k.config.Logger.Error("watcher error", "error", err)
	if k.config.ErrorHandler != nil {
		k.config.ErrorHandler(err)
	}
}
