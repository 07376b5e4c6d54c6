package projection

import (
	"iter"

	"github.com/obseq/obseq/errs"
)

// Iterator walks the target sequence in order with the same optimistic
// staleness detection as keyed iterators: the generation counter is
// captured at creation and compared on every advance, so a committed
// pass between advances surfaces as errs.ErrCollectionModified instead
// of a torn read. Iterators are not restartable.
type Iterator[S, T any] struct {
	p   *Synced[S, T]
	gen uint64
	pos int
	cur T
	err error
}

// Iter creates an iterator positioned before the first item.
func (p *Synced[S, T]) Iter() *Iterator[S, T] {
	return &Iterator[S, T]{p: p, gen: p.Generation(), pos: -1}
}

// Next advances the iterator. It returns false at the end of the
// sequence or when a committed pass has been detected; distinguish the
// two with Err.
func (it *Iterator[S, T]) Next() bool {
	if it.err != nil {
		return false
	}

	it.p.mu.RLock()
	defer it.p.mu.RUnlock()

	if it.p.gen != it.gen {
		it.err = errs.ErrCollectionModified

		return false
	}
	if it.pos+1 >= len(it.p.target) {
		return false
	}

	it.pos++
	it.cur = it.p.target[it.pos]

	return true
}

// Value returns the item at the current position. Valid only after a
// true Next.
func (it *Iterator[S, T]) Value() T { return it.cur }

// Index returns the current position. Valid only after a true Next.
func (it *Iterator[S, T]) Index() int { return it.pos }

// Err returns errs.ErrCollectionModified if the iteration detected a
// committed pass, nil otherwise.
func (it *Iterator[S, T]) Err() error { return it.err }

// All returns a range-over-func iterator over (index, item). A pass
// committed mid-iteration panics with errs.ErrCollectionModified; use
// Iter to handle staleness as a value instead.
func (p *Synced[S, T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := p.Iter()
		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
		if it.Err() != nil {
			panic(it.Err())
		}
	}
}
