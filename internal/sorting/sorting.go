// Package sorting implements the stable insertion sort used to order
// pending insertions.
//
// Insertion sort is chosen deliberately over the O(n log n) comparison
// sorts: the pending list is expected to be nearly sorted already, so the
// average displacement per element is close to zero and the sort runs in
// near-linear time. A reverse-sorted input degrades to quadratic time,
// which is an accepted trade-off.
package sorting

import "cmp"

// InsertionSortFunc sorts s in place using the comparison function c,
// which must return a negative value when a sorts before b, zero when
// they compare equal, and a positive value otherwise.
//
// The sort is stable: elements comparing equal keep their relative order.
func InsertionSortFunc[T any](s []T, c func(a, b T) int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && c(s[j-1], s[j]) > 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// InsertionSortByKey sorts s in place by the key extracted from each
// element. Stability follows from InsertionSortFunc.
func InsertionSortByKey[T any, K cmp.Ordered](s []T, key func(T) K) {
	InsertionSortFunc(s, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}
