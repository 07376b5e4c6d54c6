package keyed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obseq/obseq/errs"
	"github.com/obseq/obseq/observe"
)

type entry struct {
	id  string
	val int
}

func entryKey(e entry) string { return e.id }

// Collections must satisfy the change-notification contract consumed by
// projections.
var _ observe.Sequence[entry] = (*Collection[entry])(nil)

func newEntries(n int) []entry {
	items := make([]entry, n)
	for i := range items {
		items[i] = entry{id: fmt.Sprintf("k%03d", i), val: i}
	}

	return items
}

func TestNew_NilKeyFunc(t *testing.T) {
	_, err := New[entry](nil)
	require.ErrorIs(t, err, errs.ErrNilArgument)
}

func TestCollection_Add_Basic(t *testing.T) {
	c, err := New(entryKey)
	require.NoError(t, err)

	require.NoError(t, c.Add(entry{id: "a", val: 1}))
	require.NoError(t, c.Add(entry{id: "b", val: 2}))

	require.Equal(t, 2, c.Len())
	require.Equal(t, "a", c.At(0).id)
	require.Equal(t, "b", c.At(1).id)

	got, ok := c.Lookup("b")
	require.True(t, ok)
	require.Equal(t, 2, got.val)
}

func TestCollection_Add_DuplicateKey_Unchanged(t *testing.T) {
	c, err := From(entryKey, newEntries(3))
	require.NoError(t, err)

	gen := c.Generation()
	err = c.Add(entry{id: "k001", val: 99})

	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Equal(t, 3, c.Len())
	require.Equal(t, gen, c.Generation())
	got, _ := c.Lookup("k001")
	require.Equal(t, 1, got.val)
}

func TestCollection_Add_EmptyKey(t *testing.T) {
	c, _ := New(entryKey)
	require.ErrorIs(t, c.Add(entry{id: ""}), errs.ErrEmptyKey)
	require.Equal(t, 0, c.Len())
}

func TestCollection_Insert(t *testing.T) {
	c, _ := From(entryKey, newEntries(3))

	require.NoError(t, c.Insert(1, entry{id: "mid", val: 42}))
	require.Equal(t, []string{"k000", "mid", "k001", "k002"}, c.Keys())

	err := c.Insert(99, entry{id: "oob"})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	err = c.Insert(-1, entry{id: "neg"})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestCollection_AddRange_AllOrNothing(t *testing.T) {
	c, _ := From(entryKey, newEntries(2))
	gen := c.Generation()

	// Duplicate against existing contents.
	err := c.AddRange([]entry{{id: "x", val: 1}, {id: "k000", val: 2}})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Equal(t, 2, c.Len())
	require.Equal(t, gen, c.Generation())
	require.False(t, c.ContainsKey("x"))

	// Duplicate within the batch itself.
	err = c.AddRange([]entry{{id: "y", val: 1}, {id: "y", val: 2}})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Equal(t, 2, c.Len())
}

func TestCollection_AddRange_SingleBatchedEvent(t *testing.T) {
	c, _ := New(entryKey)
	var events []observe.Change[entry]
	c.OnChange(func(ch observe.Change[entry]) { events = append(events, ch) })

	batch := newEntries(5)
	require.NoError(t, c.AddRange(batch))

	require.Len(t, events, 1)
	require.Equal(t, observe.ActionAdd, events[0].Action)
	require.Equal(t, 0, events[0].Index)
	require.Len(t, events[0].Items, 5)
}

func TestCollection_Set_Replace(t *testing.T) {
	c, _ := From(entryKey, newEntries(3))

	// Same key at same position is a no-op key-wise.
	require.NoError(t, c.Set(1, entry{id: "k001", val: 99}))
	got, _ := c.Lookup("k001")
	require.Equal(t, 99, got.val)

	// New key is fine as long as it is unique.
	require.NoError(t, c.Set(1, entry{id: "renamed", val: 7}))
	require.False(t, c.ContainsKey("k001"))
	require.True(t, c.ContainsKey("renamed"))

	// Colliding with a different existing entry fails and changes nothing.
	err := c.Set(0, entry{id: "renamed", val: 0})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	require.Equal(t, "k000", c.At(0).id)

	err = c.Set(5, entry{id: "oob"})
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestCollection_Set_EmitsReplaceWithoutCountEvent(t *testing.T) {
	c, _ := From(entryKey, newEntries(2))

	var changes []observe.Change[entry]
	countEvents := 0
	c.OnChange(func(ch observe.Change[entry]) { changes = append(changes, ch) })
	c.OnCountChange(func(int) { countEvents++ })

	require.NoError(t, c.Set(0, entry{id: "k000", val: 5}))

	require.Len(t, changes, 1)
	require.Equal(t, observe.ActionReplace, changes[0].Action)
	require.Equal(t, 0, changes[0].Index)
	require.Equal(t, 5, changes[0].Items[0].val)
	require.Equal(t, 0, changes[0].OldItems[0].val)
	require.Equal(t, 0, countEvents)
}

func TestCollection_RemoveAt(t *testing.T) {
	c, _ := From(entryKey, newEntries(3))

	removed, err := c.RemoveAt(1)
	require.NoError(t, err)
	require.Equal(t, "k001", removed.id)
	require.Equal(t, []string{"k000", "k002"}, c.Keys())
	require.False(t, c.ContainsKey("k001"))

	_, err = c.RemoveAt(5)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestCollection_Remove_ByItemKey(t *testing.T) {
	c, _ := From(entryKey, newEntries(3))

	// Removal matches on key, not on full value equality.
	ok, err := c.Remove(entry{id: "k002", val: -1})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Remove(entry{id: "absent"})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 2, c.Len())
}

func TestCollection_Clear_EmitsReset(t *testing.T) {
	c, _ := From(entryKey, newEntries(4))
	var actions []observe.Action
	c.OnChange(func(ch observe.Change[entry]) { actions = append(actions, ch.Action) })

	require.NoError(t, c.Clear())
	require.Equal(t, 0, c.Len())
	require.Equal(t, []observe.Action{observe.ActionReset}, actions)
	require.False(t, c.ContainsKey("k000"))
}

func TestCollection_Sort_ReordersOnly(t *testing.T) {
	c, _ := From(entryKey, []entry{
		{id: "c", val: 3}, {id: "a", val: 1}, {id: "b", val: 2},
	})
	var actions []observe.Action
	c.OnChange(func(ch observe.Change[entry]) { actions = append(actions, ch.Action) })

	require.NoError(t, c.Sort(func(x, y entry) int { return x.val - y.val }))

	require.Equal(t, []string{"a", "b", "c"}, c.Keys())
	require.Equal(t, []observe.Action{observe.ActionReset}, actions)

	// Lookups are unaffected by reordering.
	got, ok := c.Lookup("c")
	require.True(t, ok)
	require.Equal(t, 3, got.val)

	require.ErrorIs(t, c.Sort(nil), errs.ErrNilArgument)
}

func TestCollection_IndexPromotion(t *testing.T) {
	c, _ := New(entryKey, WithIndexThreshold[entry](4))

	for _, e := range newEntries(3) {
		require.NoError(t, c.Add(e))
	}
	require.False(t, c.Indexed())

	require.NoError(t, c.Add(entry{id: "k003", val: 3}))
	require.True(t, c.Indexed())

	// Never demoted, even after shrinking below the threshold.
	for c.Len() > 1 {
		_, err := c.RemoveAt(0)
		require.NoError(t, err)
	}
	require.True(t, c.Indexed())
}

func TestCollection_IndexScanEquivalence(t *testing.T) {
	items := newEntries(20)

	linear, _ := From(entryKey, items, WithIndexThreshold[entry](1000))
	indexed, _ := From(entryKey, items, WithIndexThreshold[entry](1))

	require.False(t, linear.Indexed())
	require.True(t, indexed.Indexed())

	probes := append(linear.Keys(), "absent", "", "k999")
	for _, key := range probes {
		li, lok := linear.Lookup(key)
		hi, hok := indexed.Lookup(key)
		require.Equal(t, lok, hok, "key %q", key)
		require.Equal(t, li, hi, "key %q", key)
		require.Equal(t, linear.IndexOf(key), indexed.IndexOf(key), "key %q", key)
		require.Equal(t, linear.ContainsKey(key), indexed.ContainsKey(key), "key %q", key)
	}
}

func TestCollection_Validator(t *testing.T) {
	reject := errors.New("negative value")
	c, _ := New(entryKey, WithValidator(func(e entry) error {
		if e.val < 0 {
			return reject
		}
		return nil
	}))

	require.NoError(t, c.Add(entry{id: "ok", val: 1}))
	require.ErrorIs(t, c.Add(entry{id: "bad", val: -1}), reject)
	require.Equal(t, 1, c.Len())
}

func TestCollection_WithIndexThreshold_Invalid(t *testing.T) {
	_, err := New(entryKey, WithIndexThreshold[entry](0))
	require.ErrorIs(t, err, errs.ErrInvalidThreshold)
}

func TestCollection_Get(t *testing.T) {
	c, _ := From(entryKey, newEntries(2))

	got, err := c.Get("k001")
	require.NoError(t, err)
	require.Equal(t, 1, got.val)

	_, err = c.Get("absent")
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestCollection_Close(t *testing.T) {
	c, _ := From(entryKey, newEntries(3))
	notified := 0
	c.OnChange(func(observe.Change[entry]) { notified++ })

	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	// Mutations fail.
	require.ErrorIs(t, c.Add(entry{id: "x"}), errs.ErrClosed)
	require.ErrorIs(t, c.Insert(0, entry{id: "x"}), errs.ErrClosed)
	require.ErrorIs(t, c.AddRange([]entry{{id: "x"}}), errs.ErrClosed)
	require.ErrorIs(t, c.Set(0, entry{id: "x"}), errs.ErrClosed)
	_, err := c.RemoveAt(0)
	require.ErrorIs(t, err, errs.ErrClosed)
	require.ErrorIs(t, c.Clear(), errs.ErrClosed)
	require.ErrorIs(t, c.Sort(func(a, b entry) int { return 0 }), errs.ErrClosed)

	// Stored data remains accessible.
	require.Equal(t, 3, c.Len())
	require.Equal(t, "k000", c.At(0).id)
	require.True(t, c.ContainsKey("k002"))
	require.Equal(t, 0, notified)
}

func TestCollection_CountEvents(t *testing.T) {
	c, _ := New(entryKey)
	var counts []int
	c.OnCountChange(func(n int) { counts = append(counts, n) })

	require.NoError(t, c.Add(entry{id: "a"}))
	require.NoError(t, c.AddRange([]entry{{id: "b"}, {id: "c"}}))
	_, err := c.RemoveAt(0)
	require.NoError(t, err)
	require.NoError(t, c.Clear())

	require.Equal(t, []int{1, 3, 2, 0}, counts)
}

func TestCollection_Values_Copy(t *testing.T) {
	c, _ := From(entryKey, newEntries(2))

	vals := c.Values()
	vals[0] = entry{id: "mutated"}

	require.Equal(t, "k000", c.At(0).id)
}
