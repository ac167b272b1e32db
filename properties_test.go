package hab

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestTableMatchesBuiltinMap replays a random workload against a Table and
// a built-in map and checks they agree after every step.
func TestTableMatchesBuiltinMap(t *testing.T) {
	keys := make([]string, 200)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	r := rand.New(rand.NewPCG(1, 2))

	m, err := NewWithHasher[string, int](StringHasher{}, ComparableHasher[int]{},
		WithCapacity(1), WithLoadFactor(0.6))
	require.NoError(t, err)
	want := map[string]int{}

	for step := 0; step < 20000; step++ {
		k := keys[r.IntN(len(keys))]
		v := r.IntN(10)
		switch r.IntN(6) {
		case 0, 1, 2:
			prev, loaded := m.Put(k, v)
			old, existed := want[k]
			require.Equal(t, existed, loaded, "step %d put %s", step, k)
			if existed {
				require.Equal(t, old, prev.Value)
			}
			want[k] = v
		case 3:
			prev, loaded := m.PutIfPresent(k, v)
			old, existed := want[k]
			require.Equal(t, existed, loaded, "step %d put if present %s", step, k)
			if existed {
				require.Equal(t, old, prev.Value)
				want[k] = v
			}
		case 4:
			removed, loaded := m.Remove(k)
			old, existed := want[k]
			require.Equal(t, existed, loaded, "step %d remove %s", step, k)
			if existed {
				require.Equal(t, old, removed.Value)
			}
			delete(want, k)
		case 5:
			removed, loaded := m.RemovePair(k, v)
			old, existed := want[k]
			matched := existed && old == v
			require.Equal(t, matched, loaded, "step %d remove pair %s", step, k)
			if matched {
				require.Equal(t, v, removed.Value)
				delete(want, k)
			}
		}
		require.Equal(t, len(want), m.Size(), "step %d", step)
	}

	assert.Equal(t, want, ToMap(m))
	assert.Equal(t, m.Size(), chainSize(m))
	for k, v := range want {
		assert.True(t, m.Contains(k, v))
	}
}

func TestTableRoundTrip(t *testing.T) {
	m, err := New[int, string]()
	require.NoError(t, err)
	for i := -50; i < 50; i++ {
		m.Put(i, "")
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, "", v)
		assert.True(t, m.Contains(i, ""))
	}
	assert.Equal(t, 100, m.Size())
}

func TestTableOverwriteKeepsSize(t *testing.T) {
	m, err := New[string, string]()
	require.NoError(t, err)
	m.Put("k", "v1")
	size := m.Size()

	prev, loaded := m.Put("k", "v2")
	require.True(t, loaded)
	assert.Equal(t, "v1", prev.Value)
	assert.Equal(t, size, m.Size())
	v, _ := m.Get("k")
	assert.Equal(t, "v2", v)
}

func TestTableEqualIgnoresInsertionOrder(t *testing.T) {
	pairs := make([]Pair[string, int], 300)
	for i := range pairs {
		pairs[i] = Pair[string, int]{Key: uuid.NewString(), Value: i}
	}
	shuffled := append([]Pair[string, int](nil), pairs...)
	rand.New(rand.NewPCG(3, 4)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a, err := New[string, int]()
	require.NoError(t, err)
	b, err := New[string, int](WithCapacity(16), WithLoadFactor(0.9))
	require.NoError(t, err)
	a.PutPairs(pairs...)
	b.PutPairs(shuffled...)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.HashCode(), b.HashCode())
}

func TestTableLogsGrowth(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m, err := New[int, int](WithCapacity(4), WithLoadFactor(0.75), WithLogger(zap.New(core)))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}
	grew := logs.FilterMessage("table grew").AllUntimed()
	require.Len(t, grew, 6)
	first := grew[0].ContextMap()
	assert.EqualValues(t, 4, first["from"])
	assert.EqualValues(t, 8, first["to"])
	assert.EqualValues(t, 3, first["size"])
	last := grew[len(grew)-1].ContextMap()
	assert.EqualValues(t, 256, last["to"])

	m.Clear()
	cleared := logs.FilterMessage("table cleared").AllUntimed()
	require.Len(t, cleared, 1)
	assert.EqualValues(t, 100, cleared[0].ContextMap()["dropped"])
}

func TestWithLoggerNilIgnored(t *testing.T) {
	m, err := New[int, int](WithLogger(nil))
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			m.Put(i, i)
		}
		m.Clear()
	})
}
