// Package errs defines the sentinel errors shared across obseq packages.
//
// Every contract violation surfaces as (or wraps) exactly one of these
// values, so callers can branch with errors.Is regardless of the message
// context added at the call site:
//
//	if errors.Is(err, errs.ErrDuplicateKey) {
//	    // key already present, collection unchanged
//	}
package errs

import "errors"

var (
	// ErrEmptyKey indicates a key extractor returned an empty key.
	ErrEmptyKey = errors.New("empty key")

	// ErrDuplicateKey indicates an add, insert or replace would violate
	// key uniqueness. The collection is left unmodified.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyNotFound indicates the requested key is not in the collection.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange indicates a positional argument outside [0, Len).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrClosed indicates an operation on a closed collection or
	// projection. Closing releases event subscriptions only; stored data
	// remains readable.
	ErrClosed = errors.New("already closed")

	// ErrCollectionModified indicates the underlying sequence mutated
	// while an iteration was in progress. The iteration cannot be
	// resumed; start a fresh one.
	ErrCollectionModified = errors.New("collection modified during iteration")

	// ErrNilArgument indicates a required reference argument was nil.
	ErrNilArgument = errors.New("nil argument")

	// ErrInvalidThreshold indicates a non-positive index promotion
	// threshold.
	ErrInvalidThreshold = errors.New("invalid index threshold")

	// ErrSliceTooSmall indicates a destination slice cannot hold the
	// requested elements.
	ErrSliceTooSmall = errors.New("destination slice too small")

	// ErrUnknownCodec indicates an unrecognized compression type or name.
	ErrUnknownCodec = errors.New("unknown compression codec")

	// ErrUnexpectedToken indicates a JSON token of a different kind than
	// the reader was asked for.
	ErrUnexpectedToken = errors.New("unexpected JSON token")

	// ErrPathNotFound indicates a JSON path that matches nothing in the
	// document.
	ErrPathNotFound = errors.New("JSON path not found")
)
