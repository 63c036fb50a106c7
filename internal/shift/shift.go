// Package shift implements the in-place bulk shifting engine behind
// batched insertions.
//
// A BulkShifter owns one backing slice with room reserved for every
// pending insertion up front. During an operation the storage is split
// into three regions:
//
//	[0, Len())                  original elements, still in place
//	[Len(), shiftedStart)       the gap: reserved slots, contents stale
//	[shiftedStart, shiftedEnd)  shifted elements, in final position
//
// Every operation preserves Len() <= shiftedStart <= shiftedEnd, and
// shiftedEnd never changes. The gap is never exposed through any
// accessor; the operation is complete once it has shrunk to nothing.
package shift

import (
	"errors"
	"fmt"
)

// ErrUnfinished is returned by Finish while the gap region still holds
// unfilled slots.
var ErrUnfinished = errors.New("bulk shift unfinished: gap region not fully consumed")

// ErrInsufficientRoom reports a shift or push that would overrun the
// room reserved for the declared number of insertions. It indicates the
// declared and actual insertion counts disagree.
type ErrInsufficientRoom struct {
	Start     int // original index the move started from
	Needed    int // slots the operation required
	Available int // gap slots actually free
}

func (e *ErrInsufficientRoom) Error() string {
	return fmt.Sprintf("insufficient reserved room: moving from %d needs %d slots, %d available", e.Start, e.Needed, e.Available)
}

// ErrShiftOutOfRange reports a shift start beyond the remaining original
// region.
type ErrShiftOutOfRange struct {
	Start int
	Len   int
}

func (e *ErrShiftOutOfRange) Error() string {
	return fmt.Sprintf("shift start %d out of range for original length %d", e.Start, e.Len)
}

// BulkShifter rearranges a slice in place using a single reservation.
//
// It is not safe for concurrent use; the caller holds exclusive access
// to the target slice for the duration of the operation.
type BulkShifter[T any] struct {
	buf          []T // backing storage, len(buf) == shiftedEnd
	origLen      int // elements still valid at their original positions
	shiftedStart int // inclusive start of the shifted region
	shiftedEnd   int // fixed: len(target) + desired insertions
}

// New creates a BulkShifter over target with room for desiredInsertions
// additional elements. The target's allocation is reused when its
// capacity suffices; otherwise the contents move to a new slice exactly
// once.
func New[T any](target []T, desiredInsertions int) *BulkShifter[T] {
	end := len(target) + desiredInsertions

	var buf []T
	if cap(target) >= end {
		buf = target[:end]
	} else {
		buf = make([]T, end)
		copy(buf, target)
	}

	return &BulkShifter[T]{
		buf:          buf,
		origLen:      len(target),
		shiftedStart: end,
		shiftedEnd:   end,
	}
}

// IsFinished reports whether the gap region is empty and the operation
// is complete.
func (b *BulkShifter[T]) IsFinished() bool {
	return b.shiftedStart == b.origLen
}

// Len returns the number of elements still valid in the original region.
func (b *BulkShifter[T]) Len() int {
	return b.origLen
}

// ShiftedLen returns the number of elements already in final position.
func (b *BulkShifter[T]) ShiftedLen() int {
	return b.shiftedEnd - b.shiftedStart
}

// ShiftedElements returns the elements already moved to their final
// positions. The returned slice aliases the backing storage and is
// valid until the next mutating call.
func (b *BulkShifter[T]) ShiftedElements() []T {
	return b.buf[b.shiftedStart:b.shiftedEnd]
}

// ShiftOriginal moves the run of original elements [start, Len()) to the
// right end of the gap, preserving their relative order. The original
// region shrinks to start; the moved run becomes the new head of the
// shifted region. A no-op when the run is empty.
func (b *BulkShifter[T]) ShiftOriginal(start int) error {
	if start < 0 || start > b.origLen {
		return &ErrShiftOutOfRange{Start: start, Len: b.origLen}
	}
	moved := b.origLen - start
	if moved == 0 {
		return nil
	}
	// The source and destination runs may overlap, so the room check is
	// against start rather than the original length. copy has memmove
	// semantics, which makes the overlapping move safe.
	if b.shiftedStart < moved || start > b.shiftedStart-moved {
		return &ErrInsufficientRoom{Start: start, Needed: moved, Available: b.shiftedStart - start}
	}
	copy(b.buf[b.shiftedStart-moved:b.shiftedStart], b.buf[start:b.origLen])
	b.shiftedStart -= moved
	b.origLen = start
	return nil
}

// PushShifted writes value into the rightmost free gap slot, growing the
// shifted region by one on the left.
func (b *BulkShifter[T]) PushShifted(value T) error {
	if b.shiftedStart <= b.origLen {
		return &ErrInsufficientRoom{Start: b.origLen, Needed: 1, Available: 0}
	}
	b.shiftedStart--
	b.buf[b.shiftedStart] = value
	return nil
}

// Finish finalizes the operation and returns the merged slice, which
// spans the full reservation. It fails with ErrUnfinished while gap
// slots remain, since returning early would expose stale memory.
func (b *BulkShifter[T]) Finish() ([]T, error) {
	if !b.IsFinished() {
		return nil, fmt.Errorf("%w: %d slots remaining", ErrUnfinished, b.shiftedStart-b.origLen)
	}
	return b.buf, nil
}
