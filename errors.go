package insertset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/insertset/internal/shift"
)

// ErrUnfinished is returned when an apply operation ends with reserved
// room left unfilled. It indicates the insertion source produced fewer
// elements than it declared.
var ErrUnfinished = errors.New("operation unfinished: reserved room not fully consumed")

// ErrOutOfBounds indicates an insertion index beyond the remaining
// original length at the point it was processed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrOutOfBounds struct {
	Index int // the offending insertion index
	Len   int // the original length it was checked against
	cause error
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("insertion index %d out of bounds for length %d", e.Index, e.Len)
}

func (e *ErrOutOfBounds) Unwrap() error { return e.cause }

// ErrInsufficientRoom indicates a shift or push that would overrun the
// room reserved for the declared batch size. It means the declared and
// actual insertion counts disagree.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInsufficientRoom struct {
	Needed    int
	Available int
	cause     error
}

func (e *ErrInsufficientRoom) Error() string {
	return fmt.Sprintf("insufficient reserved room: need %d slots, %d available", e.Needed, e.Available)
}

func (e *ErrInsufficientRoom) Unwrap() error { return e.cause }

// ErrCountMismatch indicates an insertion source whose declared count
// disagrees with the number of insertions it actually produced.
type ErrCountMismatch struct {
	Declared int
	Actual   int
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("insertion count mismatch: declared %d, got %d", e.Declared, e.Actual)
}

func translateShiftError(err error) error {
	if err == nil {
		return nil
	}

	var oor *shift.ErrShiftOutOfRange
	if errors.As(err, &oor) {
		return &ErrOutOfBounds{Index: oor.Start, Len: oor.Len, cause: err}
	}
	var ir *shift.ErrInsufficientRoom
	if errors.As(err, &ir) {
		return &ErrInsufficientRoom{Needed: ir.Needed, Available: ir.Available, cause: err}
	}
	if errors.Is(err, shift.ErrUnfinished) {
		return fmt.Errorf("%w: %w", ErrUnfinished, err)
	}

	return err
}
