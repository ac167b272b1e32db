package hab

import (
	"strings"
	"testing"
)

func TestTableStats(t *testing.T) {
	m := newTable[int, int](t)

	stats := m.Stats()
	if stats.Capacity != DefaultCapacity {
		t.Fatalf("unexpected capacity: %s", stats.ToString())
	}
	if stats.Generations != 1 {
		t.Fatalf("unexpected number of generations: %s", stats.ToString())
	}
	if stats.EmptySlots != stats.Capacity || stats.UsedSlots != 0 {
		t.Fatalf("unexpected number of empty slots: %s", stats.ToString())
	}
	if stats.Size != 0 || stats.Counter != 0 {
		t.Fatalf("unexpected size: %s", stats.ToString())
	}
	if stats.MinChain != 0 || stats.MaxChain != 0 {
		t.Fatalf("unexpected chain lengths: %s", stats.ToString())
	}

	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}

	stats = m.Stats()
	if stats.Capacity != 256 || stats.InitialCapacity != 4 {
		t.Fatalf("unexpected capacity: %s", stats.ToString())
	}
	if stats.Generations != 7 {
		t.Fatalf("unexpected number of generations: %s", stats.ToString())
	}
	if stats.UsedSlots+stats.EmptySlots != stats.Capacity {
		t.Fatalf("slots do not add up: %s", stats.ToString())
	}
	if stats.Size != 100 || stats.Counter != 100 {
		t.Fatalf("unexpected size: %s", stats.ToString())
	}
	if stats.MinChain < 1 || stats.MaxChain < stats.MinChain {
		t.Fatalf("unexpected chain lengths: %s", stats.ToString())
	}
	if stats.TotalGrowths != 6 {
		t.Fatalf("unexpected growth count: %s", stats.ToString())
	}
}

func TestTableStatsMigrations(t *testing.T) {
	m := newIdentityTable(t, WithCapacity(4), WithLoadFactor(0.75))
	for _, k := range []int{1, 2, 3, 5} {
		m.Put(k, "")
	}
	m.Put(5, "moved")
	stats := m.Stats()
	if stats.TotalMigrations != 1 {
		t.Fatalf("unexpected migration count: %s", stats.ToString())
	}
	if stats.MaxChain != 1 {
		t.Fatalf("unexpected max chain: %s", stats.ToString())
	}
}

func TestStatsToString(t *testing.T) {
	s := newTable[int, int](t).Stats().ToString()
	for _, field := range []string{"Capacity:", "Generations:", "TotalMigrations:"} {
		if !strings.Contains(s, field) {
			t.Fatalf("%q missing from %s", field, s)
		}
	}
}
