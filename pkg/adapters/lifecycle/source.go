// Package lifecycle follows external changes to a store's storage and
// exposes them as a lifecycle.Source, next to other supervised sources.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// Reloader is the part of a Store refreshed on every change.
type Reloader interface {
	Load(ctx context.Context) error
	Len() int
}

// Change is emitted once the store has reloaded after a storage event.
type Change struct {
	core.Event
	// Notes is the size of the collection after the reload.
	Notes int
}

// String implements lifecycle.Event.
func (c Change) String() string {
	return fmt.Sprintf("%s: %d notes", c.Event, c.Notes)
}

type reloadSource struct {
	store  Reloader
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that reloads store for each event
// read from events (typically Store.Watch) and emits a Change.
// The source stops when events is closed, ctx is done or the store is closed.
func NewSource(store Reloader, events <-chan core.Event) lifecycle.Source {
	return &reloadSource{
		store:  store,
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *reloadSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *reloadSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// A canceled read would empty the collection.
				if ctx.Err() != nil {
					return nil
				}
				if err := s.store.Load(ctx); err != nil {
					if errors.Is(err, core.ErrClosed) {
						return nil
					}
					return err
				}
				select {
				case s.out <- Change{Event: e, Notes: s.store.Len()}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
