package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walks the full merge of [1,4,5,7,11] with insertions
// (0,0), (1,2), (1,3), (4,9), checking the region boundaries at every
// step.
func TestBulkShifter(t *testing.T) {
	sh := New([]int{1, 4, 5, 7, 11}, 4)

	require.Equal(t, 5, sh.Len())
	require.Equal(t, 0, sh.ShiftedLen())
	require.False(t, sh.IsFinished())

	require.NoError(t, sh.ShiftOriginal(4))
	assert.Equal(t, 4, sh.Len())
	assert.Equal(t, []int{11}, sh.ShiftedElements())

	require.NoError(t, sh.PushShifted(9))
	assert.Equal(t, []int{9, 11}, sh.ShiftedElements())

	require.NoError(t, sh.ShiftOriginal(1))
	assert.Equal(t, 1, sh.Len())
	assert.Equal(t, []int{4, 5, 7, 9, 11}, sh.ShiftedElements())

	require.NoError(t, sh.PushShifted(3))
	require.NoError(t, sh.PushShifted(2))
	require.NoError(t, sh.ShiftOriginal(0))
	require.NoError(t, sh.PushShifted(0))
	require.True(t, sh.IsFinished())

	merged, err := sh.Finish()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 7, 9, 11}, merged)
}

func TestBulkShifterReusesCapacity(t *testing.T) {
	target := make([]int, 0, 8)
	target = append(target, 1, 2, 3)

	sh := New(target, 2)
	require.NoError(t, sh.ShiftOriginal(3))
	require.NoError(t, sh.PushShifted(9))
	require.NoError(t, sh.ShiftOriginal(1))
	require.NoError(t, sh.PushShifted(7))
	require.True(t, sh.IsFinished())

	merged, err := sh.Finish()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7, 2, 3, 9}, merged)
	assert.Equal(t, 8, cap(merged), "capacity was sufficient, allocation must be reused")
}

func TestBulkShifterNoInsertions(t *testing.T) {
	sh := New([]int{1, 2, 3}, 0)
	require.True(t, sh.IsFinished())

	merged, err := sh.Finish()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, merged)
}

func TestBulkShifterFinishUnfinished(t *testing.T) {
	sh := New([]int{1, 2, 3}, 1)

	_, err := sh.Finish()
	require.ErrorIs(t, err, ErrUnfinished)
}

func TestBulkShifterShiftOutOfRange(t *testing.T) {
	sh := New([]int{1, 2, 3}, 1)

	var oor *ErrShiftOutOfRange
	err := sh.ShiftOriginal(4)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 4, oor.Start)
	assert.Equal(t, 3, oor.Len)

	require.Error(t, sh.ShiftOriginal(-1))
}

func TestBulkShifterPushWithoutRoom(t *testing.T) {
	sh := New([]int{1, 2, 3}, 1)
	require.NoError(t, sh.PushShifted(9))

	var ir *ErrInsufficientRoom
	err := sh.PushShifted(8)
	require.ErrorAs(t, err, &ir)
	assert.Equal(t, 1, ir.Needed)
	assert.Equal(t, 0, ir.Available)
}
