package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRange_EmptyAndLength(t *testing.T) {
	require.True(t, NewRange(5, 5).IsEmpty())
	require.True(t, NewRange(7, 3).IsEmpty())
	require.False(t, NewRange(3, 7).IsEmpty())

	require.Equal(t, 4, NewRange(3, 7).Length())
	require.Equal(t, 0, NewRange(7, 3).Length())
	require.InDelta(t, 0.5, NewRange(1.0, 1.5).Length(), 1e-12)
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(10, 20)

	require.True(t, r.Contains(10)) // inclusive start
	require.True(t, r.Contains(19))
	require.False(t, r.Contains(20)) // exclusive end
	require.False(t, r.Contains(9))

	require.False(t, NewRange(5, 5).Contains(5))
}

func TestRange_ContainsRange(t *testing.T) {
	r := NewRange(0, 10)

	require.True(t, r.ContainsRange(NewRange(0, 10)))
	require.True(t, r.ContainsRange(NewRange(3, 7)))
	require.True(t, r.ContainsRange(NewRange(5, 5))) // empty fits anywhere
	require.False(t, r.ContainsRange(NewRange(5, 11)))
	require.False(t, NewRange(5, 5).ContainsRange(NewRange(5, 5)))
}

func TestRange_Overlaps(t *testing.T) {
	require.True(t, NewRange(0, 10).Overlaps(NewRange(5, 15)))
	require.True(t, NewRange(5, 15).Overlaps(NewRange(0, 10)))
	require.False(t, NewRange(0, 10).Overlaps(NewRange(10, 20)), "touching bounds do not overlap")
	require.False(t, NewRange(0, 10).Overlaps(NewRange(10, 10)))
	require.False(t, NewRange(3, 3).Overlaps(NewRange(0, 10)))
}

func TestRange_Intersect(t *testing.T) {
	got, ok := NewRange(0, 10).Intersect(NewRange(5, 15))
	require.True(t, ok)
	require.Equal(t, NewRange(5, 10), got)

	_, ok = NewRange(0, 5).Intersect(NewRange(5, 10))
	require.False(t, ok)
}

func TestRange_Union(t *testing.T) {
	require.Equal(t, NewRange(0, 15), NewRange(0, 10).Union(NewRange(5, 15)))
	// Disjoint ranges: the gap is absorbed.
	require.Equal(t, NewRange(0, 20), NewRange(0, 5).Union(NewRange(15, 20)))
	// Empty operands contribute nothing.
	require.Equal(t, NewRange(3, 7), NewRange(3, 7).Union(NewRange(9, 9)))
	require.Equal(t, NewRange(3, 7), NewRange(5, 5).Union(NewRange(3, 7)))
}

func TestRange_Clamp(t *testing.T) {
	r := NewRange(10, 20)

	require.Equal(t, 10, r.Clamp(3))
	require.Equal(t, 15, r.Clamp(15))
	require.Equal(t, 20, r.Clamp(99))

	require.Panics(t, func() { NewRange(5, 5).Clamp(1) })
}

func TestRange_String(t *testing.T) {
	require.Equal(t, "[3, 7)", NewRange(3, 7).String())
}
