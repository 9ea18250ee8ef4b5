package availability

const (
	BlockAB1 = "AB1"
	BlockAB2 = "AB2"
	BlockCB  = "CB"
)

var blockFloorCount = map[string]int{
	BlockAB1: 4,
	BlockAB2: 4,
	BlockCB:  10,
}

// Blocks lists the known blocks in display order.
func Blocks() []string {
	return []string{BlockAB1, BlockAB2, BlockCB}
}

// IsBlock reports whether s names a known block.
func IsBlock(s string) bool {
	_, ok := blockFloorCount[s]
	return ok
}

// FloorsForBlock returns 1..n for the block's floor count. Unknown or empty
// blocks get an empty, non-nil slice.
func FloorsForBlock(block string) []int {
	n := blockFloorCount[block]
	floors := make([]int, n)
	for i := range floors {
		floors[i] = i + 1
	}
	return floors
}

// IsValidFloor reports whether floor exists in block.
func IsValidFloor(block string, floor int) bool {
	return floor >= 1 && floor <= blockFloorCount[block]
}
