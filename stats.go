package hab

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// Stats returns statistics for the Table. It is an O(capacity) operation,
// so it should be used only for diagnostics or debugging purposes.
func (t *Table[K, V]) Stats() *Stats {
	stats := &Stats{
		Capacity:        len(t.slots),
		InitialCapacity: t.initialCapacity,
		Generations:     bits.Len(uint(len(t.slots)/t.initialCapacity)),
		Counter:         t.size,
		MinChain:        math.MaxInt,
		TotalGrowths:    t.totalGrowths,
		TotalMigrations: t.totalMigrations,
	}
	for _, head := range t.slots {
		if head == nil {
			stats.EmptySlots++
			continue
		}
		stats.UsedSlots++
		chain := 0
		for n := head; n != nil; n = n.next {
			chain++
		}
		stats.Size += chain
		stats.MinChain = min(stats.MinChain, chain)
		stats.MaxChain = max(stats.MaxChain, chain)
	}
	if stats.UsedSlots == 0 {
		stats.MinChain = 0
	}
	return stats
}

// Stats is Table statistics.
//
// Warning: table statistics are intended to be used for diagnostic
// purposes, not for production code. Fields may be added or removed
// between minor releases.
type Stats struct {
	// Capacity is the current length of the slot array.
	Capacity int
	// InitialCapacity is the smallest generation lookups visit.
	InitialCapacity int
	// Generations is the number of capacities a lookup may scan,
	// log2(Capacity/InitialCapacity)+1.
	Generations int
	// UsedSlots is the number of slots holding a chain.
	UsedSlots int
	// EmptySlots is the number of slots holding nothing.
	EmptySlots int
	// Size is the number of pairs found by walking every chain.
	Size int
	// Counter is the table's own size counter. It always equals Size;
	// a difference indicates unsynchronized concurrent mutation.
	Counter int
	// MinChain is the length of the shortest non-empty chain.
	MinChain int
	// MaxChain is the length of the longest chain.
	MaxChain int
	// TotalGrowths is the number of times the slot array grew.
	TotalGrowths int
	// TotalMigrations is the number of writes that relinked a key found
	// away from the head of its current-generation chain.
	TotalMigrations int
}

// ToString returns string representation of table stats.
func (s *Stats) ToString() string {
	var sb strings.Builder
	sb.WriteString("Stats{\n")
	sb.WriteString(fmt.Sprintf("Capacity:        %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("InitialCapacity: %d\n", s.InitialCapacity))
	sb.WriteString(fmt.Sprintf("Generations:     %d\n", s.Generations))
	sb.WriteString(fmt.Sprintf("UsedSlots:       %d\n", s.UsedSlots))
	sb.WriteString(fmt.Sprintf("EmptySlots:      %d\n", s.EmptySlots))
	sb.WriteString(fmt.Sprintf("Size:            %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("Counter:         %d\n", s.Counter))
	sb.WriteString(fmt.Sprintf("MinChain:        %d\n", s.MinChain))
	sb.WriteString(fmt.Sprintf("MaxChain:        %d\n", s.MaxChain))
	sb.WriteString(fmt.Sprintf("TotalGrowths:    %d\n", s.TotalGrowths))
	sb.WriteString(fmt.Sprintf("TotalMigrations: %d\n", s.TotalMigrations))
	sb.WriteString("}\n")
	return sb.String()
}
