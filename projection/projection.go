// Package projection keeps a derived ("projected") sequence in lock-step
// with an observed source sequence.
//
// A Synced projection owns a target sequence and reconciles it against
// its source on construction (unless deferred) and on every structural
// change the source reports. Reconciliation is incremental: a pure Map
// function is invoked only for positions the diff proves stale, and the
// resulting change notifications are collapsed to the smallest accurate
// shape (one ranged add, one ranged remove, one replace, or a reset).
//
// The projection is bound to one source for its entire lifetime; Close
// severs the binding and is the only way to do so.
package projection

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/obseq/obseq/errs"
	"github.com/obseq/obseq/internal/options"
	"github.com/obseq/obseq/observe"
)

// Option configures a Synced projection during construction.
type Option[S, T any] = options.Option[*Synced[S, T]]

// WithDeferredSync skips the construction-time synchronization pass. The
// projection stays empty until the first source change or an explicit
// Synchronize call.
func WithDeferredSync[S, T any]() Option[S, T] {
	return options.NoError(func(p *Synced[S, T]) {
		p.deferred = true
	})
}

// Synced is a synchronized projection of a source sequence.
//
// Concurrency: reads (Len, At, Iter, All) take a read lock and run
// concurrently with each other and with the planning phase of a
// reconciliation; they are blocked only for the O(1) commit swap.
// Reconciliation passes are serialized among themselves, which also
// fixes the order of emitted notifications.
type Synced[S, T any] struct {
	source observe.Sequence[S]
	mapFn  func(S) T
	exact  func(T, S) bool
	sub    *observe.Subscription

	mu     sync.RWMutex // guards target and gen
	target []T
	spare  []T // retired target slice, reused as staging
	gen    uint64

	passMu   sync.Mutex // serializes reconciliation passes
	closed   atomic.Bool
	deferred bool
	synced   atomic.Bool

	changes observe.Feed[observe.Change[T]]
	counts  observe.Feed[int]
}

// A projection is itself a Sequence, so projections can be chained.
var _ observe.Sequence[int] = (*Synced[string, int])(nil)

// New creates a projection of source.
//
// mapFn derives a target item from a source item; it must be pure.
// exact reports whether a target item already represents a source item
// under the mapping. exact must return true only when certain: a false
// negative merely costs an extra mapFn call, while a false positive
// leaves the target silently stale.
//
// The projection subscribes to the source's change feed immediately and
// runs its first synchronization pass before returning, unless
// WithDeferredSync is given.
func New[S, T any](
	source observe.Sequence[S],
	mapFn func(S) T,
	exact func(T, S) bool,
	opts ...Option[S, T],
) (*Synced[S, T], error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source", errs.ErrNilArgument)
	}
	if mapFn == nil {
		return nil, fmt.Errorf("%w: map function", errs.ErrNilArgument)
	}
	if exact == nil {
		return nil, fmt.Errorf("%w: exact-mapping predicate", errs.ErrNilArgument)
	}

	p := &Synced[S, T]{
		source: source,
		mapFn:  mapFn,
		exact:  exact,
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	p.sub = source.OnChange(func(observe.Change[S]) {
		// Any upstream change re-enters synchronization; the pass
		// recomputes the diff, so the payload itself is not needed.
		_ = p.Synchronize()
	})

	if !p.deferred {
		if err := p.Synchronize(); err != nil {
			p.sub.Cancel()

			return nil, err
		}
	}

	return p, nil
}

// Synchronize runs one reconciliation pass, bringing the target back
// into agreement with the source. It returns errs.ErrClosed after Close;
// otherwise it only returns once the pass has committed and all
// notifications have been delivered.
//
// A pass is atomic: mapFn and exact run during planning, before any
// mutation, so a panic from either propagates to the caller with the
// target, generation counter and subscribers all unchanged.
func (p *Synced[S, T]) Synchronize() error {
	if p.closed.Load() {
		return errs.ErrClosed
	}

	p.passMu.Lock()
	defer p.passMu.Unlock()

	if p.closed.Load() {
		return errs.ErrClosed
	}
	p.reconcile()
	p.synced.Store(true)

	return nil
}

// InSync reports whether at least one synchronization pass has
// completed. It is false for a deferred projection until the first
// source change or Synchronize call.
func (p *Synced[S, T]) InSync() bool { return p.synced.Load() }

// Len returns the number of items in the target sequence.
func (p *Synced[S, T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.target)
}

// At returns the target item at index i. It panics when i is outside
// [0, Len), matching slice indexing.
func (p *Synced[S, T]) At(i int) T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.target[i]
}

// Values returns a copy of the target sequence.
func (p *Synced[S, T]) Values() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]T, len(p.target))
	copy(out, p.target)

	return out
}

// Generation returns the target's generation counter. It increments on
// every committed pass that changed the target.
func (p *Synced[S, T]) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.gen
}

// OnChange registers fn for structural change events on the target.
//
// fn runs inside the reconciliation pass that produced the event and
// must not call Synchronize on the same projection; doing so would
// self-deadlock on the pass lock. Reading the target from fn is fine.
func (p *Synced[S, T]) OnChange(fn func(observe.Change[T])) *observe.Subscription {
	return p.changes.Subscribe(fn)
}

// OnCountChange registers fn for count notifications. It fires after
// every committed change except a single-item replacement.
func (p *Synced[S, T]) OnCountChange(fn func(count int)) *observe.Subscription {
	return p.counts.Subscribe(fn)
}

// Closed reports whether Close has been called.
func (p *Synced[S, T]) Closed() bool { return p.closed.Load() }

// Close detaches the projection from its source and releases every
// event subscription. It is idempotent. The last-committed target
// remains readable; further Synchronize calls fail with errs.ErrClosed.
func (p *Synced[S, T]) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.sub.Cancel()
	p.changes.Close()
	p.counts.Close()

	return nil
}
