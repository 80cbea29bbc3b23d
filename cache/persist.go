package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ZaguanLabs/lexbridge"
)

// persistTimeout bounds a single Load/Save/Clear against the store.
const persistTimeout = 10 * time.Second

// writer saves cache snapshots on its own goroutine so callers never wait
// on storage. Signals coalesce: any number of mutations between two saves
// produce one save.
type writer struct {
	c *ResultCache

	mu           sync.Mutex
	dirty        bool
	pendingClear bool

	wake    chan struct{}
	flushes chan chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newWriter(c *ResultCache) *writer {
	w := &writer{
		c:       c,
		wake:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.persist()
		case ack := <-w.flushes:
			w.persist()
			close(ack)
		case <-w.done:
			w.persist()
			return
		}
	}
}

// signal marks the cache dirty and wakes the writer without blocking.
func (w *writer) signal() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) requestClear() {
	w.mu.Lock()
	w.pendingClear = true
	w.mu.Unlock()
}

// flush blocks until everything signalled so far has been written.
func (w *writer) flush() {
	ack := make(chan struct{})
	select {
	case w.flushes <- ack:
	case <-w.stopped:
		return
	}
	select {
	case <-ack:
	case <-w.stopped:
	}
}

func (w *writer) stop() {
	w.once.Do(func() { close(w.done) })
	<-w.stopped
}

func (w *writer) persist() {
	w.mu.Lock()
	dirty, wipe := w.dirty, w.pendingClear
	w.dirty, w.pendingClear = false, false
	w.mu.Unlock()

	if !dirty && !wipe {
		return
	}

	snap := w.c.Export()
	store := w.c.store
	logger := w.c.logger

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if wipe {
		if err := store.Clear(ctx); err != nil {
			logger.Warn("clearing persisted cache failed",
				"error", &lexbridge.PersistenceError{Op: "clear", Cause: err})
		}
		if len(snap.Entries) == 0 {
			return
		}
	}

	if err := store.Save(ctx, snap); err != nil {
		logger.Warn("persisting cache failed",
			"entries", len(snap.Entries),
			"error", &lexbridge.PersistenceError{Op: "save", Cause: err})
	}
}

// Flush waits until all mutations made so far are persisted (or have
// failed to persist). It is a no-op for memory-only caches.
func (c *ResultCache) Flush() {
	if c.w != nil {
		c.w.flush()
	}
}

// Close flushes pending writes and stops the background writer. The cache
// stays usable in memory afterwards but no longer persists.
func (c *ResultCache) Close() error {
	if c.w != nil {
		c.w.stop()
	}
	return nil
}
