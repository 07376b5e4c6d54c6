package keyed

import (
	"iter"

	"github.com/obseq/obseq/errs"
)

// Iterator walks a collection in sequence order with optimistic
// concurrency detection: the generation counter is captured when the
// iterator is created and compared on every advance. A structural
// mutation between advances makes the next Next return false with
// Err() == errs.ErrCollectionModified. Iterators are not restartable;
// create a fresh one after a detected mutation.
//
//	it := c.Iter()
//	for it.Next() {
//	    use(it.Index(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    // mutated mid-iteration
//	}
type Iterator[T any] struct {
	c   *Collection[T]
	gen uint64
	pos int
	cur T
	err error
}

// Iter creates an iterator positioned before the first item.
func (c *Collection[T]) Iter() *Iterator[T] {
	return &Iterator[T]{c: c, gen: c.gen, pos: -1}
}

// Next advances the iterator. It returns false at the end of the
// sequence or when a mutation has been detected; distinguish the two
// with Err.
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.c.gen != it.gen {
		it.err = errs.ErrCollectionModified

		return false
	}
	if it.pos+1 >= len(it.c.items) {
		return false
	}

	it.pos++
	it.cur = it.c.items[it.pos]

	return true
}

// Value returns the item at the current position. Valid only after a
// true Next.
func (it *Iterator[T]) Value() T { return it.cur }

// Index returns the current position. Valid only after a true Next.
func (it *Iterator[T]) Index() int { return it.pos }

// Err returns errs.ErrCollectionModified if the iteration detected a
// concurrent mutation, nil otherwise.
func (it *Iterator[T]) Err() error { return it.err }

// All returns a range-over-func iterator over (index, item).
//
// Unlike Iter, a range loop has no error channel, so a structural
// mutation observed mid-iteration panics with
// errs.ErrCollectionModified rather than being silently swallowed. Use
// Iter when the caller needs to handle staleness as a value.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		gen := c.gen
		for i := 0; i < len(c.items); i++ {
			if c.gen != gen {
				panic(errs.ErrCollectionModified)
			}
			if !yield(i, c.items[i]) {
				return
			}
		}
	}
}
