// Package numeric provides small numeric primitives shared across
// obseq, currently the half-open Range.
package numeric

import "fmt"

// Number constrains Range to types with ordering and subtraction.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Range is a half-open interval [Start, End). A range with End <= Start
// is empty; all empty ranges behave identically regardless of their
// bounds.
type Range[T Number] struct {
	Start T
	End   T
}

// NewRange returns the range [start, end).
func NewRange[T Number](start, end T) Range[T] {
	return Range[T]{Start: start, End: end}
}

// IsEmpty reports whether the range contains no values.
func (r Range[T]) IsEmpty() bool { return r.End <= r.Start }

// Length returns End - Start, or zero for an empty range.
func (r Range[T]) Length() T {
	if r.IsEmpty() {
		var zero T
		return zero
	}

	return r.End - r.Start
}

// Contains reports whether v lies in [Start, End).
func (r Range[T]) Contains(v T) bool {
	return v >= r.Start && v < r.End
}

// ContainsRange reports whether o lies entirely within r. An empty o is
// contained by any non-empty r.
func (r Range[T]) ContainsRange(o Range[T]) bool {
	if r.IsEmpty() {
		return false
	}
	if o.IsEmpty() {
		return true
	}

	return o.Start >= r.Start && o.End <= r.End
}

// Overlaps reports whether r and o share at least one value. Empty
// ranges overlap nothing; ranges that merely touch at a bound do not
// overlap.
func (r Range[T]) Overlaps(o Range[T]) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}

	return r.Start < o.End && o.Start < r.End
}

// Intersect returns the values present in both ranges, and whether that
// intersection is non-empty.
func (r Range[T]) Intersect(o Range[T]) (Range[T], bool) {
	if !r.Overlaps(o) {
		return Range[T]{}, false
	}

	out := Range[T]{Start: max(r.Start, o.Start), End: min(r.End, o.End)}

	return out, true
}

// Union returns the smallest range covering both r and o. Gaps between
// disjoint ranges are absorbed; an empty operand contributes nothing.
func (r Range[T]) Union(o Range[T]) Range[T] {
	switch {
	case r.IsEmpty():
		return o
	case o.IsEmpty():
		return r
	}

	return Range[T]{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// Clamp returns v limited to the closed hull [Start, End]. Note that a
// clamped value equal to End is not Contained, End being exclusive.
// Clamp panics on an empty range.
func (r Range[T]) Clamp(v T) T {
	if r.IsEmpty() {
		panic("numeric: Clamp on empty range")
	}

	return min(max(v, r.Start), r.End)
}

// String formats the range in interval notation.
func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v)", r.Start, r.End)
}
