package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "notes"

// maxIDAttempts bounds how often a configured generator may collide
// before the store falls back to NewID.
const maxIDAttempts = 8

// Config holds the dependencies of a Store.
type Config struct {
	KV          KV
	Codec       Codec
	Key         string
	Logger      *slog.Logger
	NewID       IDGenerator
	Now         func() time.Time
	EventBuffer int
}

// Store holds the authoritative, ordered note collection of the process.
//
// Mutations are applied in memory and published to subscribers
// synchronously; persistence of the full collection happens on a single
// background writer and never fails the caller.
type Store struct {
	mu      sync.RWMutex
	notes   []Note
	index   map[string]int
	loaded  bool
	loadErr error
	closed  bool
	// gen counts mutations so Load can tell its read went stale.
	gen uint64

	kv     KV
	codec  Codec
	key    string
	logger *slog.Logger
	newID  IDGenerator
	now    func() time.Time
	broker *broker

	wmu    sync.Mutex
	queued *pendingWrite
	last   *Write
	stats  writeStats

	kick       chan struct{}
	stop       chan struct{}
	writerDone chan struct{}
	cancel     context.CancelFunc
}

// NewStore creates an empty Store and starts its writer.
// Call Load to read the persisted collection and Close to release it.
func NewStore(cfg Config) (*Store, error) {
	if cfg.KV == nil {
		return nil, errors.New("store requires a KV adapter")
	}
	if cfg.Codec == nil {
		return nil, errors.New("store requires a codec")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.NewID == nil {
		cfg.NewID = NewID
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		index:      make(map[string]int),
		kv:         cfg.KV,
		codec:      cfg.Codec,
		key:        cfg.Key,
		logger:     cfg.Logger,
		newID:      cfg.NewID,
		now:        cfg.Now,
		broker:     newBroker(cfg.EventBuffer),
		kick:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		writerDone: make(chan struct{}),
		cancel:     cancel,
	}

	lifecycle.Go(ctx, s.runWriter, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("note writer stopped unexpectedly", "error", err)
	}))

	return s, nil
}

// Load replaces the in-memory collection with the persisted one.
//
// A missing key leaves the collection empty. Read and decode failures are
// logged and also leave it empty; they are reported by State, never returned.
// The only error returned is ErrClosed.
//
// A mutation made while the blob is being read is newer than the blob, so
// the read is discarded and the in-memory collection kept; the queued write
// of that mutation brings storage back in line.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	gen := s.gen
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	notes, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		s.logger.Warn("notes changed while loading, keeping in-memory collection",
			"key", s.key, "mutations", s.gen-gen)
		s.loaded = true
		return nil
	}

	if err != nil {
		s.logger.Error("failed to load notes, starting empty", "key", s.key, "error", err)
		notes = nil
	}
	s.loadErr = err
	s.loaded = true
	s.notes = notes
	s.reindex(0)

	s.logger.Debug("notes loaded", "key", s.key, "count", len(s.notes))
	s.broker.publish(newEvent(EventLoad, "", s.now()))
	return nil
}

func (s *Store) read(ctx context.Context) ([]Note, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", s.key, err)
	}
	if !ok {
		s.logger.Debug("no persisted notes", "key", s.key)
		return nil, nil
	}
	notes, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", s.key, err)
	}
	if err := ValidateCollection(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Add appends a new note with a fresh id and returns it.
// Empty title and content are allowed.
func (s *Store) Add(title, content string) Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	n := Note{
		ID:        s.nextID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	s.index[n.ID] = len(s.notes) - 1
	s.gen++

	s.broker.publish(newEvent(EventCreate, n.ID, now))
	s.enqueueLocked()
	return n
}

// Update merges p into the note with the given id and refreshes its UpdatedAt.
// It reports false, and changes nothing, when no such note exists.
func (s *Store) Update(id string, p Patch) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Note{}, false
	}

	p.apply(&s.notes[i], s.timestamp())
	n := s.notes[i]
	s.gen++

	s.broker.publish(newEvent(EventModify, n.ID, n.UpdatedAt))
	s.enqueueLocked()
	return n, true
}

// Delete removes the note with the given id.
// It reports false when no such note exists, which makes it idempotent.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.notes = slices.Delete(s.notes, i, i+1)
	delete(s.index, id)
	s.reindex(i)
	s.gen++

	s.broker.publish(newEvent(EventDelete, id, s.now()))
	s.enqueueLocked()
	return true
}

// Search returns, in collection order, the notes whose title or content
// contains query, ignoring case. An empty query matches every note.
func (s *Store) Search(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Note, 0)
	for _, n := range s.notes {
		if query == "" || n.Matches(query) {
			matches = append(matches, n)
		}
	}
	return matches
}

// Notes returns a copy of the whole collection in insertion order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Note{}, false
	}
	return s.notes[i], true
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Subscribe registers a listener for store events.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	return s.broker.subscribe()
}

// Watch observes changes made to the persisted collection outside this
// store, if the KV adapter supports it.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.kv.(Watchable)
	if !ok {
		return nil, errors.New("storage does not support watching")
	}
	return w.Watch(ctx, s.key)
}

// Pending returns the future of the most recent write.
func (s *Store) Pending() *Write {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.last == nil {
		return completedWrite(nil)
	}
	return s.last
}

// Flush waits until every change made so far has been written.
// It returns the error of the last write.
func (s *Store) Flush(ctx context.Context) error {
	return s.Pending().Wait(ctx)
}

// Close stops accepting writes, drains the writer and closes every
// subscriber channel. Changes made after Close stay in memory only.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)

	var err error
	select {
	case <-s.writerDone:
	case <-ctx.Done():
		err = fmt.Errorf("note writer did not drain: %w", ctx.Err())
	}
	s.cancel()
	s.broker.closeAll()
	return err
}

// timestamp returns the current time in UTC without a monotonic reading,
// so that it survives a codec round-trip unchanged.
func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) nextID() string {
	for range maxIDAttempts {
		id := s.newID()
		if _, dup := s.index[id]; id != "" && !dup {
			return id
		}
		s.logger.Warn("generated note id collides, drawing again", "id", id)
	}
	for {
		id := NewID()
		if _, dup := s.index[id]; !dup {
			return id
		}
	}
}

func (s *Store) reindex(from int) {
	if from == 0 {
		clear(s.index)
	}
	for i := from; i < len(s.notes); i++ {
		s.index[s.notes[i].ID] = i
	}
}
