// Package obseq provides observable sequence primitives: a keyed,
// adaptively indexed ordered collection and a synchronized projection
// that mirrors any observable sequence through a mapping function.
//
// The building blocks live in subpackages; this package wraps the most
// common constructions.
//
// # Core Pieces
//
//   - observe: the change-notification contract (Sequence, Change, Feed)
//   - keyed: an ordered collection with unique string keys and an index
//     that switches itself on past a size threshold
//   - projection: a target sequence kept in sync with a source by
//     diff-based reconciliation, one batched event per pass
//
// # Basic Usage
//
// Creating a collection and a projection over it:
//
//	import "github.com/obseq/obseq"
//
//	type Device struct {
//	    Serial string
//	    Name   string
//	}
//
//	devices, _ := obseq.NewCollection(func(d Device) string { return d.Serial })
//	_ = devices.Add(Device{Serial: "a1", Name: "thermostat"})
//
//	labels, _ := obseq.NewProjection(devices,
//	    func(d Device) string { return d.Name },
//	    func(label string, d Device) bool { return label == d.Name },
//	)
//
//	_ = devices.Add(Device{Serial: "b2", Name: "camera"})
//	// labels now holds ["thermostat", "camera"], updated by the add.
//
// Every structural change is observable on both ends:
//
//	sub := labels.OnChange(func(ch observe.Change[string]) {
//	    fmt.Println(ch.Action, ch.Items)
//	})
//	defer sub.Cancel()
//
// For option control (index threshold, validators, deferred sync), use
// the keyed and projection packages directly.
package obseq

import (
	"github.com/cespare/xxhash/v2"

	"github.com/obseq/obseq/keyed"
	"github.com/obseq/obseq/observe"
	"github.com/obseq/obseq/projection"
)

// KeyID computes the 64-bit xxHash64 of a key, the same hash the keyed
// collection buckets by. Useful for callers that store or compare key
// identities without retaining the strings.
func KeyID(key string) uint64 {
	return xxhash.Sum64String(key)
}

// NewCollection creates an empty keyed collection with default options:
// adaptive indexing at the default threshold and no validator.
func NewCollection[T any](keyOf keyed.KeyFunc[T]) (*keyed.Collection[T], error) {
	return keyed.New(keyOf)
}

// NewCollectionFrom creates a keyed collection seeded with items, which
// must have pairwise distinct keys.
func NewCollectionFrom[T any](keyOf keyed.KeyFunc[T], items []T) (*keyed.Collection[T], error) {
	return keyed.From(keyOf, items)
}

// NewProjection creates a projection of source through mapFn and
// synchronizes it immediately. exact reports whether a target item is
// still the mapping of a source item; it is what lets reconciliation
// keep unchanged items instead of remapping them.
func NewProjection[S, T any](
	source observe.Sequence[S],
	mapFn func(S) T,
	exact func(T, S) bool,
) (*projection.Synced[S, T], error) {
	return projection.New(source, mapFn, exact)
}
