package observe

// Sequence is the surface a synchronized projection reads its source
// through: a count, index-based access, and a structural change feed.
//
// keyed.Collection and projection.Synced both satisfy Sequence, so
// projections can be chained.
type Sequence[T any] interface {
	// Len returns the number of items in the sequence.
	Len() int

	// At returns the item at index i. Implementations panic when i is
	// outside [0, Len), matching slice indexing.
	At(i int) T

	// OnChange registers fn for structural change events. The returned
	// subscription's Cancel is idempotent and safe after the sequence is
	// closed.
	OnChange(fn func(Change[T])) *Subscription
}
