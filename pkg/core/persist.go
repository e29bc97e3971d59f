package core

import (
	"context"
	"fmt"
	"time"
)

// Write is the future of persisting one snapshot of the collection.
// A snapshot superseded before the writer picked it up is never written
// on its own; its Write completes with the result of the newer one.
type Write struct {
	done chan struct{}
	err  error
}

func newWrite() *Write {
	return &Write{done: make(chan struct{})}
}

func completedWrite(err error) *Write {
	w := newWrite()
	w.complete(err)
	return w
}

func (w *Write) complete(err error) {
	w.err = err
	close(w.done)
}

// Done is closed once the write finished, successfully or not.
func (w *Write) Done() <-chan struct{} {
	return w.done
}

// Err returns the write error, or nil while the write is still in flight.
func (w *Write) Err() error {
	select {
	case <-w.done:
		return w.err
	default:
		return nil
	}
}

// Wait blocks until the write finished or ctx is done.
func (w *Write) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pendingWrite is the latest snapshot waiting for the writer, together
// with every future it will complete.
type pendingWrite struct {
	notes   []Note
	futures []*Write
}

// writeStats is the persistence side of the store state.
type writeStats struct {
	writes    int
	failures  int
	coalesced int
	lastErr   error
	lastAt    *time.Time
}

// enqueueLocked snapshots the collection and hands it to the writer.
// Callers must hold s.mu so snapshots are queued in mutation order.
func (s *Store) enqueueLocked() *Write {
	if s.closed {
		s.logger.Warn("store is closed, change kept in memory only", "key", s.key)
		w := completedWrite(ErrClosed)
		s.wmu.Lock()
		s.last = w
		s.wmu.Unlock()
		return w
	}

	snapshot := make([]Note, len(s.notes))
	copy(snapshot, s.notes)

	w := newWrite()
	s.wmu.Lock()
	if s.queued == nil {
		s.queued = &pendingWrite{}
	} else {
		s.stats.coalesced++
	}
	s.queued.notes = snapshot
	s.queued.futures = append(s.queued.futures, w)
	s.last = w
	s.wmu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
	return w
}

// runWriter is the single persistence goroutine. It exits once the store
// is closed and the queue is drained.
func (s *Store) runWriter(ctx context.Context) error {
	defer close(s.writerDone)
	for {
		select {
		case <-s.kick:
			s.writeQueued(ctx)
		case <-s.stop:
			s.writeQueued(ctx)
			return nil
		}
	}
}

func (s *Store) writeQueued(ctx context.Context) {
	s.wmu.Lock()
	batch := s.queued
	s.queued = nil
	s.wmu.Unlock()

	if batch == nil {
		return
	}

	err := s.persist(ctx, batch.notes)

	now := time.Now()
	s.wmu.Lock()
	s.stats.writes++
	s.stats.lastAt = &now
	s.stats.lastErr = err
	if err != nil {
		s.stats.failures++
	}
	s.wmu.Unlock()

	if err != nil {
		s.logger.Error("failed to save notes", "key", s.key, "notes", len(batch.notes), "error", err)
	} else {
		s.logger.Debug("notes saved", "key", s.key, "notes", len(batch.notes))
	}

	for _, w := range batch.futures {
		w.complete(err)
	}
}

func (s *Store) persist(ctx context.Context, notes []Note) error {
	data, err := s.codec.Encode(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", s.key, err)
	}
	return nil
}
