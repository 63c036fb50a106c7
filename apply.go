package insertset

import "github.com/hupe1980/insertset/internal/shift"

// Iterator is an exact-size iterator over pending insertions. Len must
// report the exact number of remaining insertions and stay accurate
// until exhausted; ApplyBulkInsertions reserves room based on it and
// fails with ErrCountMismatch when the iterator breaks the contract.
type Iterator[T any] interface {
	Len() int
	Next() (Insertion[T], bool)
}

// ApplyBulkInsertions applies all insertions yielded by the iterator to
// target and returns the merged slice. The iterator must yield
// insertions in reverse sorted order (highest index first).
//
// Processing in reverse order moves every original element at most once,
// directly to its final position: by the time an insertion is handled,
// room for every later-processed (lower-index) insertion has already
// been accounted for. Total data movement is O(n + m) regardless of how
// the insertion positions are distributed.
//
// Most callers want InsertionSet.Apply, which sorts the queue and
// supplies a conforming iterator.
func ApplyBulkInsertions[T any](target []T, insertions Iterator[T]) ([]T, error) {
	declared := insertions.Len()
	sh := shift.New(target, declared)

	consumed := 0
	for !sh.IsFinished() {
		ins, ok := insertions.Next()
		if !ok {
			return nil, &ErrCountMismatch{Declared: declared, Actual: consumed}
		}
		consumed++
		if ins.Index < 0 || ins.Index > sh.Len() {
			return nil, &ErrOutOfBounds{Index: ins.Index, Len: sh.Len()}
		}
		if err := sh.ShiftOriginal(ins.Index); err != nil {
			return nil, translateShiftError(err)
		}
		if err := sh.PushShifted(ins.Element); err != nil {
			return nil, translateShiftError(err)
		}
	}
	merged, err := sh.Finish()
	if err != nil {
		return nil, translateShiftError(err)
	}
	if rest := insertions.Len(); rest != 0 {
		return nil, &ErrCountMismatch{Declared: declared, Actual: consumed + rest}
	}
	return merged, nil
}
