package insertset

import (
	"iter"

	"github.com/hupe1980/insertset/internal/sorting"
)

// Insertion is a single value pending insertion.
type Insertion[T any] struct {
	// Index is the position in the original slice before which the
	// element is inserted, equivalent to the index argument of
	// slices.Insert. Valid range is [0, len(target)].
	Index int
	// Element is the value to insert.
	Element T
}

// NewInsertion creates an Insertion of element before index.
func NewInsertion[T any](index int, element T) Insertion[T] {
	return Insertion[T]{Index: index, Element: element}
}

// InsertionSet accumulates positional insertions against a slice and
// applies them all in a single O(n + m) pass, where n is the slice
// length and m the number of insertions. Queuing the insertions and
// applying them once avoids the quadratic blowup of calling
// slices.Insert in a loop.
//
// Insertions queued at the same index are applied in the order queued.
//
// An InsertionSet is not safe for concurrent use.
type InsertionSet[T any] struct {
	insertions []Insertion[T]
}

// New creates an empty InsertionSet.
func New[T any]() *InsertionSet[T] {
	return &InsertionSet[T]{}
}

// Collect creates an InsertionSet from a sequence of insertions,
// preserving their order.
func Collect[T any](seq iter.Seq[Insertion[T]]) *InsertionSet[T] {
	s := New[T]()
	for ins := range seq {
		s.Push(ins)
	}
	return s
}

// Push queues the given insertion.
func (s *InsertionSet[T]) Push(ins Insertion[T]) {
	s.insertions = append(s.insertions, ins)
}

// Insert queues element to be inserted before index.
func (s *InsertionSet[T]) Insert(index int, element T) {
	s.Push(Insertion[T]{Index: index, Element: element})
}

// Len returns the number of insertions currently queued.
func (s *InsertionSet[T]) Len() int {
	return len(s.insertions)
}

// All returns the queued insertions in queue order. The sequence is
// valid until the next mutating call.
func (s *InsertionSet[T]) All() iter.Seq[Insertion[T]] {
	return func(yield func(Insertion[T]) bool) {
		for _, ins := range s.insertions {
			if !yield(ins) {
				return
			}
		}
	}
}

// Apply applies all queued insertions to target and returns the merged
// slice. The target's allocation is reused when its capacity suffices;
// otherwise the result is backed by one new allocation. Either way the
// caller must use the returned slice, as with append.
//
// Apply drains the set: on success it is empty and ready for reuse. An
// insertion whose index exceeds len(target) fails with ErrOutOfBounds;
// target is left in an unspecified but fully valid state in that case.
func (s *InsertionSet[T]) Apply(target []T) ([]T, error) {
	s.sort()
	return ApplyBulkInsertions(target, &poppingIter[T]{insertions: &s.insertions})
}

// sort orders the queued insertions by index, keeping the queue order
// among equal indices.
//
// Insertion sort looks like an odd choice, but the queue is expected to
// be nearly sorted already: callers scanning a slice front to back queue
// mostly increasing indices. With a near-zero average displacement the
// sort runs in near-linear time, and it is stable, which the
// equal-index ordering contract requires. A reverse-sorted queue costs
// quadratic time, an accepted trade-off. (WebKit's B3 insertion set
// makes the same bet with bubble sort.)
func (s *InsertionSet[T]) sort() {
	sorting.InsertionSortByKey(s.insertions, func(ins Insertion[T]) int {
		return ins.Index
	})
}

// poppingIter drains a sorted insertion slice from the tail, yielding
// insertions in reverse sorted order.
type poppingIter[T any] struct {
	insertions *[]Insertion[T]
}

func (it *poppingIter[T]) Len() int { return len(*it.insertions) }

func (it *poppingIter[T]) Next() (Insertion[T], bool) {
	s := *it.insertions
	if len(s) == 0 {
		var zero Insertion[T]
		return zero, false
	}
	ins := s[len(s)-1]
	s[len(s)-1] = Insertion[T]{} // release the element
	*it.insertions = s[:len(s)-1]
	return ins, true
}
