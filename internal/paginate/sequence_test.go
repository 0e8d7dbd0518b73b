package paginate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeSequence_ThreeElementBoundaries(t *testing.T) {
	items := []string{"a", "b", "c"}

	first, err := MakeSequence(0, items)
	require.NoError(t, err)
	require.True(t, first.First)
	require.False(t, first.Last)
	require.True(t, first.Prev.IsNone())
	require.Equal(t, "b", first.Next.Unwrap())
	require.Equal(t, 3, first.Length)
	require.Equal(t, 2, first.RevIndex)
	require.Equal(t, 3, first.RevIndex1)

	middle, err := MakeSequence(1, items)
	require.NoError(t, err)
	require.Equal(t, 2, middle.Index1)
	require.Equal(t, "a", middle.Prev.Unwrap())
	require.Equal(t, "c", middle.Next.Unwrap())
	require.False(t, middle.First)
	require.False(t, middle.Last)

	last, err := MakeSequence(2, items)
	require.NoError(t, err)
	require.True(t, last.Last)
	require.True(t, last.Next.IsNone())
	require.Equal(t, "b", last.Prev.Unwrap())
	require.Equal(t, 0, last.RevIndex)
	require.Equal(t, 1, last.RevIndex1)
}

func TestMakeSequence_SingleElementIsFirstAndLast(t *testing.T) {
	seq, err := MakeSequence(0, []int{7})
	require.NoError(t, err)
	require.True(t, seq.First)
	require.True(t, seq.Last)
	require.True(t, seq.Next.IsNone())
	require.True(t, seq.Prev.IsNone())
	require.Equal(t, 1, seq.Length)
}

func TestMakeSequence_IndexOutOfRange(t *testing.T) {
	_, err := MakeSequence(3, []int{1, 2, 3})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = MakeSequence(-1, []int{1, 2, 3})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = MakeSequence(0, []int{})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
