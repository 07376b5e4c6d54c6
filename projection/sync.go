package projection

import (
	"slices"

	"github.com/obseq/obseq/observe"
)

// reconcile plans and commits one synchronization pass. The caller
// holds passMu, so this is the only writer; readers are blocked only by
// the commit inside.
//
// The pass never mutates the target in place. It builds the complete
// next contents into the retired spare slice while recording the edits,
// then swaps the slices under the write lock. mapFn and exact run only
// during the build, which is what makes a pass atomic under user-code
// panics.
func (p *Synced[S, T]) reconcile() {
	srcLen := p.source.Len()
	tgtLen := len(p.target)

	switch {
	case srcLen == 0 && tgtLen == 0:
		return
	case tgtLen == 0:
		p.bulkPopulate(srcLen)
	case srcLen == 0:
		p.bulkClear()
	default:
		p.reconcileGeneral(srcLen, tgtLen)
	}
}

// bulkPopulate is the empty-target fast path: map every source item and
// emit one ranged add.
func (p *Synced[S, T]) bulkPopulate(srcLen int) {
	next := p.spare[:0]
	for i := 0; i < srcLen; i++ {
		next = append(next, p.mapFn(p.source.At(i)))
	}

	p.commit(next)
	p.changes.Publish(observe.Added(slices.Clone(next), 0))
	p.counts.Publish(len(next))
}

// bulkClear is the empty-source fast path: drop everything and emit a
// single reset.
func (p *Synced[S, T]) bulkClear() {
	p.commit(p.spare[:0])
	p.changes.Publish(observe.ResetChange[T]())
	p.counts.Publish(0)
}

// reconcileGeneral walks source and target with two cursors.
//
// On a pairwise mismatch the interpretation is tie-broken by the
// remaining length delta: while the target is longer the mismatched
// target item is treated as removed, while the source is longer the
// mismatched source item is treated as inserted, and at equal lengths
// the position is replaced. This is what lets a one-slot shift surface
// as the single removal or insertion it was, instead of a cascade of
// bogus replacements.
func (p *Synced[S, T]) reconcileGeneral(srcLen, tgtLen int) {
	next := p.spare[:0]
	delta := srcLen - tgtLen

	var added, removed []T
	addStart, removeStart := -1, -1
	lastAdd, lastRemove := -2, -2
	addsContiguous, removesContiguous := true, true
	replaces := 0
	var repNew, repOld T
	repIndex := -1

	// Add positions are in new-sequence coordinates, remove positions in
	// old-sequence coordinates, matching how consumers of the respective
	// events address the items.
	recordAdd := func(v T, pos int) {
		if addStart < 0 {
			addStart = pos
		} else if pos != lastAdd+1 {
			addsContiguous = false
		}
		lastAdd = pos
		added = append(added, v)
	}
	recordRemove := func(v T, pos int) {
		if removeStart < 0 {
			removeStart = pos
		} else if pos != lastRemove+1 {
			removesContiguous = false
		}
		lastRemove = pos
		removed = append(removed, v)
	}

	i, j := 0, 0
	for i < srcLen || j < tgtLen {
		switch {
		case j >= tgtLen:
			v := p.mapFn(p.source.At(i))
			next = append(next, v)
			recordAdd(v, len(next)-1)
			i++
		case i >= srcLen:
			recordRemove(p.target[j], j)
			j++
		default:
			sv := p.source.At(i)
			tv := p.target[j]
			if p.exact(tv, sv) {
				next = append(next, tv)
				i++
				j++

				continue
			}
			switch {
			case delta < 0:
				recordRemove(tv, j)
				j++
				delta++
			case delta > 0:
				v := p.mapFn(sv)
				next = append(next, v)
				recordAdd(v, len(next)-1)
				i++
				delta--
			default:
				v := p.mapFn(sv)
				next = append(next, v)
				replaces++
				repNew, repOld, repIndex = v, tv, len(next)-1
				i++
				j++
			}
		}
	}

	hasAdds := len(added) > 0
	hasRemoves := len(removed) > 0
	if !hasAdds && !hasRemoves && replaces == 0 {
		// Already in sync; keep the (possibly regrown) staging slice and
		// leave the generation counter alone.
		clear(next)
		p.spare = next[:0]

		return
	}

	p.commit(next)

	switch {
	case replaces == 1 && !hasAdds && !hasRemoves:
		// A lone in-place swap stays itemized; it does not alter the
		// count, so no count event either.
		p.changes.Publish(observe.Replaced(repNew, repOld, repIndex))

		return
	case replaces > 0 || (hasAdds && hasRemoves):
		// Element-wise replacement or scattered edits: a full-rebuild
		// signal is cheaper for consumers than an itemized storm.
		p.changes.Publish(observe.ResetChange[T]())
	case hasAdds:
		if addsContiguous {
			p.changes.Publish(observe.Added(added, addStart))
		} else {
			p.changes.Publish(observe.ResetChange[T]())
		}
	default: // hasRemoves
		if removesContiguous {
			p.changes.Publish(observe.Removed(removed, removeStart))
		} else {
			p.changes.Publish(observe.ResetChange[T]())
		}
	}
	p.counts.Publish(p.Len())
}

// commit swaps the freshly built contents in under the write lock and
// retires the old slice as the next pass's staging buffer.
func (p *Synced[S, T]) commit(next []T) {
	p.mu.Lock()
	old := p.target
	p.target = next
	p.gen++
	p.mu.Unlock()

	clear(old)
	p.spare = old[:0]
}
