// Package observe defines the change-notification contract shared by the
// obseq collections.
//
// A collection that wants to be observed exposes three things: a count,
// index-based read access, and a feed of structural change events. The
// Sequence interface captures exactly that surface, Change carries one
// structural event, and Feed delivers events to subscribers synchronously
// in registration order.
package observe

import "fmt"

// Action identifies the kind of structural change a sequence underwent.
type Action int

const (
	// ActionAdd reports items inserted at Change.Index.
	ActionAdd Action = iota + 1
	// ActionRemove reports items removed from Change.Index.
	ActionRemove
	// ActionReplace reports a single item replaced in place at
	// Change.Index. Replacement does not alter the count.
	ActionReplace
	// ActionReset reports that consumers should treat the whole sequence
	// as replaced rather than interpreting itemized payloads.
	ActionReset
)

// String returns the action name for diagnostics.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionReset:
		return "reset"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Change describes one structural mutation of an observable sequence.
//
// The populated fields depend on Action:
//   - ActionAdd: Items holds the added items, Index their start position.
//   - ActionRemove: OldItems holds the removed items, Index the position
//     they were removed from.
//   - ActionReplace: Items holds the single new item, OldItems the single
//     old item, Index the replaced position.
//   - ActionReset: no items, Index is -1.
//
// Payload slices are owned by the event and must not be mutated by
// subscribers.
type Change[T any] struct {
	Action   Action
	Items    []T
	OldItems []T
	Index    int
}

// Added builds an ActionAdd change for items inserted at start.
func Added[T any](items []T, start int) Change[T] {
	return Change[T]{Action: ActionAdd, Items: items, Index: start}
}

// Removed builds an ActionRemove change for items removed from start.
func Removed[T any](items []T, start int) Change[T] {
	return Change[T]{Action: ActionRemove, OldItems: items, Index: start}
}

// Replaced builds an ActionReplace change for a single in-place swap.
func Replaced[T any](newItem, oldItem T, index int) Change[T] {
	return Change[T]{
		Action:   ActionReplace,
		Items:    []T{newItem},
		OldItems: []T{oldItem},
		Index:    index,
	}
}

// ResetChange builds an ActionReset change.
func ResetChange[T any]() Change[T] {
	return Change[T]{Action: ActionReset, Index: -1}
}
