package hab

import (
	"iter"
	"math"
	"math/bits"
)

// nextPowOf2 calculates the smallest power of 2 that is greater than or equal to n.
// Compatible with both 32-bit and 64-bit systems.
func nextPowOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// generations yields the historical capacities a key may have been placed
// at: capacity, capacity/2, ... down to and including floor. Both arguments
// are powers of two.
func generations(capacity, floor int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for g := capacity; g >= floor && g > 0; g >>= 1 {
			if !yield(g) {
				return
			}
		}
	}
}

// growLen returns the slice length needed to hold size+1 pairs under
// loadFactor, or 0 when the current capacity still has room.
func growLen(size, capacity int, loadFactor float64) int {
	if float64(size) < float64(capacity)*loadFactor {
		return 0
	}
	n := nextPowOf2(int(math.Ceil(float64(size+1) / loadFactor)))
	if n <= capacity {
		return 0
	}
	return n
}

// grow replaces the slot slice with a longer one when the pre-insert size
// reaches the load threshold. Nodes keep their indices.
func (t *Table[K, V]) grow() {
	n := growLen(t.size, len(t.slots), t.loadFactor)
	if n == 0 {
		return
	}
	old := len(t.slots)
	slots := make([]*node[K, V], n)
	copy(slots, t.slots)
	t.slots = slots
	t.totalGrowths++
	t.logGrowth(old, n)
}
