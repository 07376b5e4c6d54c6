// Package keyed provides an ordered collection of uniquely-keyed items
// with adaptive key lookup and structural change notifications.
//
// Small collections answer key lookups by linear scan; once the element
// count reaches the promotion threshold the collection builds a hash
// index (xxHash64 of the key, verified on probe) and maintains it
// incrementally from then on. The index is never demoted. Order is
// stable between mutations: nothing reorders items except an explicit
// Sort.
//
// Every structural mutation increments a generation counter, emits a
// change event on the collection's feed, and (except for replacement)
// a count event. Iteration is optimistic: iterators capture the
// generation at start and fail with errs.ErrCollectionModified as soon
// as they observe a mutation.
//
// A Collection is not internally synchronized; writers must be
// serialized externally. For a reader/writer-locked derived view, feed
// it to projection.New.
package keyed

import (
	"fmt"
	"slices"

	"github.com/obseq/obseq/errs"
	"github.com/obseq/obseq/internal/options"
	"github.com/obseq/obseq/observe"
)

// KeyFunc extracts the lookup key from an item. It must be pure and must
// never return an empty key for an item accepted into the collection.
type KeyFunc[T any] func(T) string

// Collection is an ordered, observable collection of uniquely-keyed
// items. Use New or From to construct one.
type Collection[T any] struct {
	keyOf     KeyFunc[T]
	validate  func(T) error
	threshold int

	items []T
	index map[uint64][]T // nil until promoted

	gen    uint64
	closed bool

	changes observe.Feed[observe.Change[T]]
	counts  observe.Feed[int]
}

// New creates an empty collection whose items are keyed by keyOf.
func New[T any](keyOf KeyFunc[T], opts ...Option[T]) (*Collection[T], error) {
	if keyOf == nil {
		return nil, fmt.Errorf("%w: key function", errs.ErrNilArgument)
	}

	c := &Collection[T]{
		keyOf:     keyOf,
		threshold: DefaultIndexThreshold,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// From creates a collection pre-populated with items. The batch is
// validated for key uniqueness before anything is stored; a duplicate
// fails construction entirely.
func From[T any](keyOf KeyFunc[T], items []T, opts ...Option[T]) (*Collection[T], error) {
	c, err := New(keyOf, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.AddRange(items); err != nil {
		return nil, err
	}

	return c, nil
}

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// At returns the item at index i. It panics when i is outside [0, Len),
// matching slice indexing.
func (c *Collection[T]) At(i int) T { return c.items[i] }

// Generation returns the current generation counter. It increments on
// every structural mutation and is the basis of stale-iteration
// detection.
func (c *Collection[T]) Generation() uint64 { return c.gen }

// Indexed reports whether the hash index has been promoted.
func (c *Collection[T]) Indexed() bool { return c.index != nil }

// Closed reports whether Close has been called.
func (c *Collection[T]) Closed() bool { return c.closed }

// checkItem runs the validator and extracts a non-empty key.
func (c *Collection[T]) checkItem(item T) (string, error) {
	if c.validate != nil {
		if err := c.validate(item); err != nil {
			return "", err
		}
	}
	key := c.keyOf(item)
	if key == "" {
		return "", errs.ErrEmptyKey
	}

	return key, nil
}

// Add appends item. It fails with errs.ErrDuplicateKey if the item's key
// is already present, leaving the collection unchanged.
func (c *Collection[T]) Add(item T) error {
	return c.Insert(len(c.items), item)
}

// Insert places item at index i, shifting subsequent items. i may equal
// Len to append.
func (c *Collection[T]) Insert(i int, item T) error {
	if c.closed {
		return errs.ErrClosed
	}
	if i < 0 || i > len(c.items) {
		return fmt.Errorf("%w: %d (len %d)", errs.ErrIndexOutOfRange, i, len(c.items))
	}

	key, err := c.checkItem(item)
	if err != nil {
		return err
	}
	if _, exists := c.lookup(key); exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
	}

	c.items = slices.Insert(c.items, i, item)
	c.indexInsert(key, item)
	c.maybePromote()
	c.gen++

	c.changes.Publish(observe.Added([]T{item}, i))
	c.counts.Publish(len(c.items))

	return nil
}

// AddRange appends a batch of items. The whole batch is validated for
// internal and pre-existing duplicate keys before anything is stored;
// on failure the collection is unchanged. A successful batch emits a
// single ranged add event.
func (c *Collection[T]) AddRange(items []T) error {
	if c.closed {
		return errs.ErrClosed
	}
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key, err := c.checkItem(item)
		if err != nil {
			return err
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q within batch", errs.ErrDuplicateKey, key)
		}
		if _, exists := c.lookup(key); exists {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
		seen[key] = struct{}{}
	}

	start := len(c.items)
	c.items = append(c.items, items...)

	if c.index == nil && len(c.items) >= c.threshold {
		// One build for the whole batch is cheaper than per-item upkeep.
		c.buildIndex()
	} else if c.index != nil {
		for _, item := range items {
			c.indexInsert(c.keyOf(item), item)
		}
	}
	c.gen++

	c.changes.Publish(observe.Added(slices.Clone(items), start))
	c.counts.Publish(len(c.items))

	return nil
}

// Set replaces the item at index i. The new item's key may collide only
// with the item being replaced; any other collision fails with
// errs.ErrDuplicateKey and leaves the collection unchanged. Replacement
// emits a replace event but no count event, since the size is unchanged.
func (c *Collection[T]) Set(i int, item T) error {
	if c.closed {
		return errs.ErrClosed
	}
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: %d (len %d)", errs.ErrIndexOutOfRange, i, len(c.items))
	}

	key, err := c.checkItem(item)
	if err != nil {
		return err
	}

	old := c.items[i]
	oldKey := c.keyOf(old)
	if key != oldKey {
		if _, exists := c.lookup(key); exists {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
		}
	}

	c.indexRemove(oldKey)
	c.items[i] = item
	c.indexInsert(key, item)
	c.gen++

	c.changes.Publish(observe.Replaced(item, old, i))

	return nil
}

// RemoveAt removes and returns the item at index i.
func (c *Collection[T]) RemoveAt(i int) (T, error) {
	var zero T
	if c.closed {
		return zero, errs.ErrClosed
	}
	if i < 0 || i >= len(c.items) {
		return zero, fmt.Errorf("%w: %d (len %d)", errs.ErrIndexOutOfRange, i, len(c.items))
	}

	item := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	c.indexRemove(c.keyOf(item))
	c.gen++

	c.changes.Publish(observe.Removed([]T{item}, i))
	c.counts.Publish(len(c.items))

	return item, nil
}

// Remove removes the item whose key equals item's key. It reports
// whether anything was removed.
func (c *Collection[T]) Remove(item T) (bool, error) {
	if c.closed {
		return false, errs.ErrClosed
	}

	return c.RemoveByKey(c.keyOf(item))
}

// RemoveByKey removes the item stored under key. It reports whether
// anything was removed.
func (c *Collection[T]) RemoveByKey(key string) (bool, error) {
	if c.closed {
		return false, errs.ErrClosed
	}

	i := c.IndexOf(key)
	if i < 0 {
		return false, nil
	}
	if _, err := c.RemoveAt(i); err != nil {
		return false, err
	}

	return true, nil
}

// Clear removes every item and emits a single reset event. The promoted
// index, if any, stays promoted (emptied, not discarded).
func (c *Collection[T]) Clear() error {
	if c.closed {
		return errs.ErrClosed
	}

	clear(c.items)
	c.items = c.items[:0]
	if c.index != nil {
		clear(c.index)
	}
	c.gen++

	c.changes.Publish(observe.ResetChange[T]())
	c.counts.Publish(0)

	return nil
}

// Sort stably reorders the backing sequence by cmp (negative when a
// orders before b). The hash index is keyed, not positional, so it is
// untouched. Emits a single reset event.
func (c *Collection[T]) Sort(cmp func(a, b T) int) error {
	if c.closed {
		return errs.ErrClosed
	}
	if cmp == nil {
		return fmt.Errorf("%w: comparator", errs.ErrNilArgument)
	}

	slices.SortStableFunc(c.items, cmp)
	c.gen++

	c.changes.Publish(observe.ResetChange[T]())
	c.counts.Publish(len(c.items))

	return nil
}

// Lookup returns the item stored under key. The indexed and linear code
// paths return identical results for identical input.
func (c *Collection[T]) Lookup(key string) (T, bool) {
	return c.lookup(key)
}

// Get returns the item stored under key, or errs.ErrKeyNotFound.
func (c *Collection[T]) Get(key string) (T, error) {
	item, ok := c.lookup(key)
	if !ok {
		return item, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, key)
	}

	return item, nil
}

// ContainsKey reports whether key is present.
func (c *Collection[T]) ContainsKey(key string) bool {
	_, ok := c.lookup(key)

	return ok
}

// IndexOf returns the position of the item stored under key, or -1.
func (c *Collection[T]) IndexOf(key string) int {
	if c.index != nil {
		// Fast negative: skip the scan when the index rules the key out.
		if _, ok := c.indexLookup(key); !ok {
			return -1
		}
	}
	for i, item := range c.items {
		if c.keyOf(item) == key {
			return i
		}
	}

	return -1
}

// Keys returns the keys in sequence order.
func (c *Collection[T]) Keys() []string {
	keys := make([]string, len(c.items))
	for i, item := range c.items {
		keys[i] = c.keyOf(item)
	}

	return keys
}

// Values returns a copy of the backing sequence.
func (c *Collection[T]) Values() []T {
	return slices.Clone(c.items)
}

// OnChange registers fn for structural change events.
func (c *Collection[T]) OnChange(fn func(observe.Change[T])) *observe.Subscription {
	return c.changes.Subscribe(fn)
}

// OnCountChange registers fn for count notifications. It fires after
// every structural change except replacement, which cannot alter the
// size.
func (c *Collection[T]) OnCountChange(fn func(count int)) *observe.Subscription {
	return c.counts.Subscribe(fn)
}

// Close releases every event subscription. It is idempotent. Stored
// items remain readable through Len, At, Lookup and iteration; further
// mutations fail with errs.ErrClosed.
func (c *Collection[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.changes.Close()
	c.counts.Close()

	return nil
}
