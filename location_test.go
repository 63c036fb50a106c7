package insertset

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatedLocations(t *testing.T) {
	set := New[int]()
	set.Insert(0, 0)
	set.Insert(1, 2)
	set.Insert(1, 3)
	set.Insert(4, 9)

	updates, err := set.UpdatedLocations(5)
	require.NoError(t, err)
	assert.Equal(t, []LocationUpdate{
		{Location: InsertionNumber(0), Position: 0},
		{Location: OriginalAt(0), Position: 1},
		{Location: InsertionNumber(1), Position: 2},
		{Location: InsertionNumber(2), Position: 3},
		{Location: OriginalAt(1), Position: 4},
		{Location: OriginalAt(2), Position: 5},
		{Location: OriginalAt(3), Position: 6},
		{Location: InsertionNumber(3), Position: 7},
		{Location: OriginalAt(4), Position: 8},
	}, updates)
	assert.Equal(t, 4, set.Len(), "location mapping must not drain the set")
}

func TestUpdatedLocationsEmptySet(t *testing.T) {
	updates, err := New[int]().UpdatedLocations(5)
	require.NoError(t, err)

	require.Len(t, updates, 5)
	for i, u := range updates {
		assert.Equal(t, LocationUpdate{Location: OriginalAt(i), Position: i}, u)
	}
}

func TestUpdatedLocationsOutOfBounds(t *testing.T) {
	set := New[int]()
	set.Insert(6, 42)

	_, err := set.UpdatedLocations(5)
	var oob *ErrOutOfBounds
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 6, oob.Index)
}

// indexIter is a plain exact-size iterator over indices, with an
// optionally inflated declared count.
type indexIter struct {
	indices  []int
	declared int
}

func (it *indexIter) Len() int { return it.declared }

func (it *indexIter) Next() (int, bool) {
	if len(it.indices) == 0 {
		return 0, false
	}
	index := it.indices[0]
	it.indices = it.indices[1:]
	if it.declared > 0 {
		it.declared--
	}
	return index, true
}

func TestUpdatedLocationsFuncReversedNumbering(t *testing.T) {
	// Indices in reverse sorted order; the raw entry point numbers
	// insertions in consumption order, not batch order.
	var got []LocationUpdate
	err := UpdatedLocationsFunc(3, &indexIter{indices: []int{2, 0}, declared: 2}, func(loc OriginalLocation, pos int) {
		got = append(got, LocationUpdate{Location: loc, Position: pos})
	})
	require.NoError(t, err)

	assert.Equal(t, []LocationUpdate{
		{Location: OriginalAt(2), Position: 4},
		{Location: InsertionNumber(0), Position: 3}, // highest index first
		{Location: OriginalAt(0), Position: 1},
		{Location: OriginalAt(1), Position: 2},
		{Location: InsertionNumber(1), Position: 0},
	}, got)
}

func TestUpdatedLocationsFuncCountMismatch(t *testing.T) {
	err := UpdatedLocationsFunc(3, &indexIter{indices: []int{1}, declared: 2}, func(OriginalLocation, int) {})

	var cm *ErrCountMismatch
	require.ErrorAs(t, err, &cm)
	assert.Equal(t, 2, cm.Declared)
	assert.Equal(t, 1, cm.Actual)
}

// The location mapping and the materialized merge must agree exactly:
// whatever the mapping says ends up at position p is what Apply actually
// puts there.
func TestUpdatedLocationsMatchApply(t *testing.T) {
	rng := rand.New(rand.NewSource(4711))

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(48)
		target := make([]int, n)
		for i := range target {
			target[i] = rng.Intn(1000)
		}

		m := rng.Intn(24)
		set := New[int]()
		elements := make([]int, m)
		for k := 0; k < m; k++ {
			elements[k] = 1000 + k
			set.Insert(rng.Intn(n+1), elements[k])
		}

		updates, err := set.UpdatedLocations(n)
		require.NoError(t, err)

		merged, err := set.Apply(slices.Clone(target))
		require.NoError(t, err)
		require.Len(t, merged, n+m)
		require.Len(t, updates, n+m)

		for i, u := range updates {
			require.Equal(t, i, u.Position)
			switch u.Location.Kind {
			case KindOriginal:
				require.Equal(t, target[u.Location.Index], merged[u.Position])
			case KindInsertion:
				require.Equal(t, elements[u.Location.Index], merged[u.Position])
			}
		}
	}
}

func TestOriginalLocationString(t *testing.T) {
	assert.Equal(t, "Original(3)", OriginalAt(3).String())
	assert.Equal(t, "Insertion(0)", InsertionNumber(0).String())
}
