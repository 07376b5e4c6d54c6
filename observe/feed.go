package observe

import (
	"sync"
	"sync/atomic"
)

// Feed is a synchronous multicast of events of type E.
//
// Subscribers are invoked on the goroutine that calls Publish, in the
// order they subscribed. The feed itself is safe for concurrent use, but
// it never introduces asynchrony: Publish returns only after every live
// subscriber has run.
//
// The zero value is ready to use.
type Feed[E any] struct {
	mu     sync.Mutex
	subs   []*subscriber[E]
	closed bool
}

// The active flag is atomic: Publish reads it outside f.mu while a
// concurrent Cancel clears it.
type subscriber[E any] struct {
	fn     func(E)
	active atomic.Bool
}

// Subscription represents one registration on a Feed.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel removes the subscription from its feed. It is idempotent and
// safe to call after the feed has been closed.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Subscribe registers fn to receive every subsequently published event.
//
// Subscribing to a closed feed returns an inert subscription that will
// never fire.
func (f *Feed[E]) Subscribe(fn func(E)) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || fn == nil {
		return &Subscription{}
	}

	sub := &subscriber[E]{fn: fn}
	sub.active.Store(true)
	f.subs = append(f.subs, sub)

	return &Subscription{cancel: func() {
		f.mu.Lock()
		sub.active.Store(false)
		f.compactLocked()
		f.mu.Unlock()
	}}
}

// compactLocked drops cancelled subscribers. Caller holds f.mu.
func (f *Feed[E]) compactLocked() {
	live := f.subs[:0]
	for _, s := range f.subs {
		if s.active.Load() {
			live = append(live, s)
		}
	}
	// Clear the tail so cancelled subscribers can be collected.
	for i := len(live); i < len(f.subs); i++ {
		f.subs[i] = nil
	}
	f.subs = live
}

// Publish delivers event to every live subscriber, synchronously and in
// registration order.
//
// The subscriber list is snapshotted before delivery, so handlers may
// cancel subscriptions or subscribe anew without corrupting the walk.
// Cancellation takes effect immediately: a subscriber cancelled during
// delivery, by a handler or by another goroutine, is not invoked for
// the remainder of the in-flight event. Subscribers added during
// delivery only see subsequent events.
func (f *Feed[E]) Publish(event E) {
	f.mu.Lock()
	snapshot := make([]*subscriber[E], len(f.subs))
	copy(snapshot, f.subs)
	f.mu.Unlock()

	for _, s := range snapshot {
		if s.active.Load() {
			s.fn(event)
		}
	}
}

// Len reports the number of live subscribers.
func (f *Feed[E]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subs)
}

// Close drops every subscriber and rejects future subscriptions.
// It is idempotent. Events published after Close are discarded.
func (f *Feed[E]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.subs {
		s.active.Store(false)
	}
	f.subs = nil
	f.closed = true
}
