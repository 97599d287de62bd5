// Package state implements the observable client-side state layer: signal
// cells, derived values, and the storefront stores built from them.
//
// A Signal is a mutable cell whose subscribers are notified on change. A
// Computed is a read-only derivation over one or more cells, recomputed on
// read and re-announced whenever a dependency changes. Hub.Batch groups
// mutations so observers receive a single notification per cell per batch,
// after every mutation has been applied; observers never see torn state.
package state

import "sync"

// Observable is anything that can announce "I changed" to a watcher.
// Both Signal and Computed implement it.
type Observable interface {
	// Watch registers a change callback and returns a cancel func.
	Watch(fn func()) (cancel func())
}

// notifier is the unit the Hub schedules during a batch.
type notifier interface {
	notify()
}

// Hub schedules change notifications for a group of signals. Outside a
// batch, notifications fire synchronously on Set. Inside Batch they are
// deferred and deduplicated until the outermost batch ends.
type Hub struct {
	mu     sync.Mutex
	depth  int
	queue  []notifier
	queued map[notifier]bool
}

// NewHub creates a notification hub.
func NewHub() *Hub {
	return &Hub{queued: make(map[notifier]bool)}
}

// Batch runs fn with notifications deferred. Nested batches flush once, at
// the end of the outermost call.
func (h *Hub) Batch(fn func()) {
	h.mu.Lock()
	h.depth++
	h.mu.Unlock()

	fn()

	h.mu.Lock()
	if h.depth > 1 {
		h.depth--
		h.mu.Unlock()
		return
	}

	// Outermost batch. Drain in waves with the batch still open, so that
	// notifiers scheduled by observers mid-flush (a computed fanning in from
	// several changed cells) are queued and deduplicated rather than fired
	// once per dependency.
	for len(h.queue) > 0 {
		pending := h.queue
		h.queue = nil
		h.queued = make(map[notifier]bool)
		h.mu.Unlock()

		for _, n := range pending {
			n.notify()
		}
		h.mu.Lock()
	}
	h.depth--
	h.mu.Unlock()
}

// schedule fires n now, or queues it if a batch is open. Queued notifiers
// are deduplicated; order follows first scheduling.
func (h *Hub) schedule(n notifier) {
	h.mu.Lock()
	if h.depth > 0 {
		if !h.queued[n] {
			h.queued[n] = true
			h.queue = append(h.queue, n)
		}
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	n.notify()
}

// Signal is an observable mutable cell.
type Signal[T any] struct {
	hub *Hub

	mu       sync.RWMutex
	value    T
	subs     map[int]func(T)
	watchers map[int]func()
	nextID   int
}

// NewSignal creates a signal with an initial value.
func NewSignal[T any](hub *Hub, initial T) *Signal[T] {
	return &Signal[T]{
		hub:      hub,
		value:    initial,
		subs:     make(map[int]func(T)),
		watchers: make(map[int]func()),
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores a new value and announces the change. Inside a batch the
// announcement is deferred; subscribers then observe the final value.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	s.hub.schedule(s)
}

// Subscribe registers a typed change callback. The callback receives the
// value current at notification time. Returns a cancel func.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Watch registers an untyped change callback. Used by derived values and
// view bindings that only need the change event.
func (s *Signal[T]) Watch(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// notify delivers the current value to every subscriber and watcher.
func (s *Signal[T]) notify() {
	s.mu.RLock()
	value := s.value
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	watchers := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(value)
	}
	for _, fn := range watchers {
		fn()
	}
}

// Computed is a read-only value derived from one or more observables. The
// value is recomputed on every read, so reads are always consistent with the
// cells; subscriptions piggyback on the dependencies' notifications through
// the hub, which deduplicates them within a batch.
type Computed[T any] struct {
	hub *Hub
	fn  func() T

	mu       sync.Mutex
	subs     map[int]func(T)
	watchers map[int]func()
	nextID   int
}

// NewComputed creates a derived value over the given dependencies.
func NewComputed[T any](hub *Hub, fn func() T, deps ...Observable) *Computed[T] {
	c := &Computed[T]{
		hub:      hub,
		fn:       fn,
		subs:     make(map[int]func(T)),
		watchers: make(map[int]func()),
	}
	for _, dep := range deps {
		dep.Watch(func() { hub.schedule(c) })
	}
	return c
}

// Get computes and returns the current value.
func (c *Computed[T]) Get() T {
	return c.fn()
}

// Subscribe registers a typed change callback. Returns a cancel func.
func (c *Computed[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Watch registers an untyped change callback, allowing computed values to
// feed further derivations.
func (c *Computed[T]) Watch(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.watchers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

func (c *Computed[T]) notify() {
	value := c.fn()

	c.mu.Lock()
	subs := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	watchers := make([]func(), 0, len(c.watchers))
	for _, fn := range c.watchers {
		watchers = append(watchers, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
	for _, fn := range watchers {
		fn()
	}
}
