package insertset

import "github.com/RoaringBitmap/roaring/v2"

// InsertedPositions returns a bitmap of the final output positions that
// will be occupied by inserted elements after applying the set to a
// slice of length targetLen. Positions absent from the bitmap hold
// original elements.
//
// The bitmap is computed from the location mapping alone; no elements
// are moved and the set keeps its pending insertions.
func (s *InsertionSet[T]) InsertedPositions(targetLen int) (*roaring.Bitmap, error) {
	rb := roaring.New()
	if err := s.ComputeUpdatedLocations(targetLen, func(loc OriginalLocation, pos int) {
		if loc.Kind == KindInsertion {
			rb.Add(uint32(pos))
		}
	}); err != nil {
		return nil, err
	}
	return rb, nil
}
