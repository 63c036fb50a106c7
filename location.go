package insertset

import (
	"cmp"
	"fmt"
	"slices"
)

// LocationKind discriminates the provenance of an output slot.
type LocationKind uint8

const (
	// KindOriginal marks a slot holding an element of the original sequence.
	KindOriginal LocationKind = iota
	// KindInsertion marks a slot holding a newly inserted element.
	KindInsertion
)

// OriginalLocation describes where an output element came from: either
// the original sequence (Index is its original position) or the pending
// batch (Index is its 0-based batch-order number).
type OriginalLocation struct {
	Kind  LocationKind
	Index int
}

// OriginalAt returns the location of the original element at index i.
func OriginalAt(i int) OriginalLocation {
	return OriginalLocation{Kind: KindOriginal, Index: i}
}

// InsertionNumber returns the location of the k-th queued insertion.
func InsertionNumber(k int) OriginalLocation {
	return OriginalLocation{Kind: KindInsertion, Index: k}
}

func (l OriginalLocation) String() string {
	switch l.Kind {
	case KindInsertion:
		return fmt.Sprintf("Insertion(%d)", l.Index)
	default:
		return fmt.Sprintf("Original(%d)", l.Index)
	}
}

// LocationUpdate pairs an element's provenance with its final position
// in the merged output.
type LocationUpdate struct {
	Location OriginalLocation
	Position int
}

// IndexIterator is an exact-size iterator over insertion indices in
// reverse sorted order. Len must report the exact number of remaining
// indices and stay accurate until exhausted.
type IndexIterator interface {
	Len() int
	Next() (int, bool)
}

// UpdatedLocationsFunc computes the final position of every element of a
// merge without moving any data. It mirrors the bookkeeping of
// ApplyBulkInsertions exactly: indices are consumed in reverse sorted
// order and the callback fires in processing order, not final-position
// order.
//
// Insertion locations are numbered in consumption order, i.e. relative
// to the reversed batch. Callers that want batch-order numbers must
// invert them (InsertionSet.ComputeUpdatedLocations does).
func UpdatedLocationsFunc(targetLen int, indices IndexIterator, fn func(OriginalLocation, int)) error {
	declared := indices.Len()
	origLen := targetLen
	shiftedEnd := origLen + declared
	shiftedStart := shiftedEnd

	consumed := 0
	insertionID := 0
	for origLen != shiftedStart {
		index, ok := indices.Next()
		if !ok {
			return &ErrCountMismatch{Declared: declared, Actual: consumed}
		}
		consumed++
		if index < 0 || index > origLen {
			return &ErrOutOfBounds{Index: index, Len: origLen}
		}
		if moved := origLen - index; moved > 0 {
			if shiftedStart < moved || index > shiftedStart-moved {
				return &ErrInsufficientRoom{Needed: moved, Available: shiftedStart - index}
			}
			for i, pos := index, shiftedStart-moved; i < origLen; i, pos = i+1, pos+1 {
				fn(OriginalAt(i), pos)
			}
			shiftedStart -= moved
			origLen = index
		}
		if shiftedStart <= origLen {
			return &ErrInsufficientRoom{Needed: 1, Available: 0}
		}
		shiftedStart--
		fn(InsertionNumber(insertionID), shiftedStart)
		insertionID++
	}
	// Everything below the lowest insertion index never moves.
	for i := 0; i < origLen; i++ {
		fn(OriginalAt(i), i)
	}
	if rest := indices.Len(); rest != 0 {
		return &ErrCountMismatch{Declared: declared, Actual: consumed + rest}
	}
	return nil
}

// ComputeUpdatedLocations invokes fn once per output slot of the merge
// against a sequence of length targetLen, pairing each slot's final
// position with the provenance of the element that ends up there. No
// elements are moved and the set keeps its pending insertions.
//
// Insertion locations carry batch-order numbers. The callback fires in
// processing order; use UpdatedLocations for final-position order.
func (s *InsertionSet[T]) ComputeUpdatedLocations(targetLen int, fn func(OriginalLocation, int)) error {
	s.sort()
	n := len(s.insertions)
	return UpdatedLocationsFunc(targetLen, &reverseIndexIter[T]{insertions: s.insertions, remaining: n}, func(loc OriginalLocation, pos int) {
		if loc.Kind == KindInsertion {
			// Consumption order is reversed, convert back to batch order.
			loc.Index = n - (loc.Index + 1)
		}
		fn(loc, pos)
	})
}

// UpdatedLocations returns the location of every element of the merge,
// sorted by final position.
func (s *InsertionSet[T]) UpdatedLocations(targetLen int) ([]LocationUpdate, error) {
	result := make([]LocationUpdate, 0, targetLen+s.Len())
	if err := s.ComputeUpdatedLocations(targetLen, func(loc OriginalLocation, pos int) {
		result = append(result, LocationUpdate{Location: loc, Position: pos})
	}); err != nil {
		return nil, err
	}
	slices.SortStableFunc(result, func(a, b LocationUpdate) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return result, nil
}

// reverseIndexIter walks insertion indices from the tail of the sorted
// slice without draining it.
type reverseIndexIter[T any] struct {
	insertions []Insertion[T]
	remaining  int
}

func (it *reverseIndexIter[T]) Len() int { return it.remaining }

func (it *reverseIndexIter[T]) Next() (int, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	it.remaining--
	return it.insertions[it.remaining].Index, true
}
