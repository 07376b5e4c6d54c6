package keyed

import "github.com/cespare/xxhash/v2"

// The hash index maps xxHash64 of a key to the items carrying that hash.
// Distinct keys can collide on the hash, so every probe verifies the
// stored item's key before trusting a hit; a collision degrades to a
// short bucket scan, never to a wrong answer. Buckets hold items rather
// than positions, which keeps the index purely keyed: positional
// mutations and Sort never invalidate it.

func hashKey(key string) uint64 {
	return xxhash.Sum64String(key)
}

// buildIndex constructs the index over the current backing sequence in
// one pass. Called exactly once, when the element count first reaches
// the promotion threshold.
func (c *Collection[T]) buildIndex() {
	index := make(map[uint64][]T, len(c.items))
	for _, item := range c.items {
		h := hashKey(c.keyOf(item))
		index[h] = append(index[h], item)
	}
	c.index = index
}

// maybePromote builds the index if the collection just reached the
// threshold. No-op once promoted.
func (c *Collection[T]) maybePromote() {
	if c.index == nil && len(c.items) >= c.threshold {
		c.buildIndex()
	}
}

func (c *Collection[T]) indexInsert(key string, item T) {
	if c.index == nil {
		return
	}
	h := hashKey(key)
	c.index[h] = append(c.index[h], item)
}

func (c *Collection[T]) indexRemove(key string) {
	if c.index == nil {
		return
	}
	h := hashKey(key)
	bucket := c.index[h]
	for i, stored := range bucket {
		if c.keyOf(stored) == key {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.index, h)
	} else {
		c.index[h] = bucket
	}
}

// indexLookup probes the index for key. Must only be called when the
// index exists.
func (c *Collection[T]) indexLookup(key string) (T, bool) {
	for _, stored := range c.index[hashKey(key)] {
		if c.keyOf(stored) == key {
			return stored, true
		}
	}

	var zero T

	return zero, false
}

// scanLookup is the pre-promotion code path: a linear scan of the
// backing sequence. indexLookup and scanLookup must agree for every key
// and every reachable state; the cross-check tests hold both paths to
// that.
func (c *Collection[T]) scanLookup(key string) (T, bool) {
	for _, item := range c.items {
		if c.keyOf(item) == key {
			return item, true
		}
	}

	var zero T

	return zero, false
}

func (c *Collection[T]) lookup(key string) (T, bool) {
	if c.index != nil {
		return c.indexLookup(key)
	}

	return c.scanLookup(key)
}
