package insertset_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/insertset"
)

// Example demonstrates merging a batch of insertions in one pass.
func Example() {
	set := insertset.New[int]()
	set.Insert(0, 0)
	set.Insert(1, 2)
	set.Insert(1, 3)
	set.Insert(4, 9)

	merged, err := set.Apply([]int{1, 4, 5, 7, 11})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(merged)
	// Output: [0 1 2 3 4 5 7 9 11]
}

// Example_updatedLocations demonstrates computing where every element
// ends up without materializing the merge.
func Example_updatedLocations() {
	set := insertset.New[string]()
	set.Insert(1, "x")

	updates, err := set.UpdatedLocations(2)
	if err != nil {
		log.Fatal(err)
	}

	for _, u := range updates {
		fmt.Printf("%s -> %d\n", u.Location, u.Position)
	}
	// Output:
	// Original(0) -> 0
	// Insertion(0) -> 1
	// Original(1) -> 2
}
