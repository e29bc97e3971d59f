package fs

import (
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

type pendingEvent struct {
	timer *time.Timer
	gen   uint64
}

// debouncer collapses bursts of events for the same key into the last one.
// An atomic write shows up as several filesystem events.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]pendingEvent
	gen     uint64
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]pendingEvent),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if p, ok := d.pending[e.ID]; ok && p.timer.Stop() {
		d.wg.Done()
	}

	d.gen++
	gen := d.gen
	d.wg.Add(1)
	timer := time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if p, ok := d.pending[e.ID]; ok && p.gen == gen {
			delete(d.pending, e.ID)
		}
		d.mu.Unlock()
		emit(e)
	})
	d.pending[e.ID] = pendingEvent{timer: timer, gen: gen}
}

// stopAndWait drops events not yet due and waits, at most timeout, for
// callbacks already running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
