package paginate

import (
	"fmt"

	"git.home.luguber.info/inful/websmith/internal/foundation"
)

// Sequence describes the position of one element within an ordered collection:
// index variants, boundary flags, and the neighbouring elements. Templates use
// it for prev/next navigation between documents.
//
// A Sequence is a snapshot. It must be recomputed after the collection is
// re-sorted or otherwise mutated.
type Sequence[T any] struct {
	Index     int // 0-based position
	Index1    int // 1-based position
	RevIndex  int // distance from the end, 0-based
	RevIndex1 int // distance from the end, 1-based
	First     bool
	Last      bool
	Length    int

	// Next and Prev hold the neighbouring elements. They are None at the
	// respective boundary; check First/Last (or IsSome) before unwrapping.
	Next foundation.Option[T]
	Prev foundation.Option[T]
}

// MakeSequence computes positional metadata for items[index].
func MakeSequence[T any](index int, items []T) (Sequence[T], error) {
	if index < 0 || index >= len(items) {
		return Sequence[T]{}, fmt.Errorf("%w: sequence index %d with %d items", ErrIndexOutOfRange, index, len(items))
	}

	seq := Sequence[T]{
		Index:     index,
		Index1:    index + 1,
		RevIndex1: len(items) - index,
		RevIndex:  len(items) - index - 1,
		First:     index == 0,
		Last:      index == len(items)-1,
		Length:    len(items),
		Next:      foundation.None[T](),
		Prev:      foundation.None[T](),
	}
	if !seq.Last {
		seq.Next = foundation.Some(items[index+1])
	}
	if !seq.First {
		seq.Prev = foundation.Some(items[index-1])
	}
	return seq, nil
}
