// Package options provides the generic functional-option plumbing shared
// by the configurable obseq types. Public packages wrap Option[T] in their
// own exported option aliases so their godoc stays self-contained.
package options

// Option configures a value of type T and may reject the configuration
// with an error.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] struct {
	fn func(T) error
}

func (o optionFunc[T]) apply(target T) error {
	return o.fn(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T]{fn: fn}
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs every option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
