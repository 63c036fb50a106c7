// Package insertset performs batched positional insertions on a slice.
//
// slices.Insert takes O(n) time to move the tail of the slice, so
// calling it in a loop causes quadratic blowup. An InsertionSet defers
// the memory movement: queue any number of insertions, then apply them
// all in a single O(n + m) pass that reuses the slice's allocation when
// its capacity suffices.
//
// # Quick Start
//
//	set := insertset.New[int]()
//	set.Insert(0, 0)
//	set.Insert(1, 2)
//	set.Insert(1, 3)
//	set.Insert(4, 9)
//
//	merged, err := set.Apply([]int{1, 4, 5, 7, 11})
//	// merged: [0 1 2 3 4 5 7 9 11]
//
// Insertions queued at the same index are applied in queue order.
//
// # Location Mapping
//
// Callers that only need to know where everything ends up (for example
// a compiler relocating jump targets after rewriting an instruction
// stream) can compute the final position of every original and inserted
// element without materializing the merge:
//
//	updates, err := set.UpdatedLocations(len(target))
//	for _, u := range updates {
//	    fmt.Println(u.Location, "->", u.Position)
//	}
//
// # Error Model
//
// All errors reported by this package are immediate contract violations
// by the caller (an out-of-bounds index, a lying iterator), not
// transient conditions. Nothing is retryable; fix the input.
//
// The batching approach is modeled on the insertion sets used by the
// WebKit B3 JIT to rewrite instruction streams.
package insertset
