package keyed

import (
	"fmt"

	"github.com/obseq/obseq/errs"
	"github.com/obseq/obseq/internal/options"
)

// DefaultIndexThreshold is the element count at which a collection
// promotes from linear scan to a hash index unless overridden with
// WithIndexThreshold.
const DefaultIndexThreshold = 8

// Option configures a Collection during construction.
type Option[T any] = options.Option[*Collection[T]]

// WithIndexThreshold overrides the promotion threshold: once the element
// count reaches n the collection builds its hash index. The threshold
// must be at least 1. A promoted index is never demoted, even if the
// collection later shrinks below n.
func WithIndexThreshold[T any](n int) Option[T] {
	return options.New(func(c *Collection[T]) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidThreshold, n)
		}
		c.threshold = n

		return nil
	})
}

// WithCapacity pre-allocates backing storage for n elements.
func WithCapacity[T any](n int) Option[T] {
	return options.New(func(c *Collection[T]) error {
		if n < 0 {
			return fmt.Errorf("%w: negative capacity %d", errs.ErrIndexOutOfRange, n)
		}
		if n > 0 {
			c.items = make([]T, 0, n)
		}

		return nil
	})
}

// WithValidator installs a hook invoked on every item before it is added,
// inserted, or set. A non-nil return rejects the mutation and leaves the
// collection unchanged.
func WithValidator[T any](fn func(T) error) Option[T] {
	return options.NoError(func(c *Collection[T]) {
		c.validate = fn
	})
}
