package hab

import (
	"iter"
	"strings"
)

// rangeNodes visits slots 0..capacity-1 and each chain head to tail.
func (t *Table[K, V]) rangeNodes(yield func(n *node[K, V]) bool) {
	for _, head := range t.slots {
		for n := head; n != nil; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}

// All is the iterator version for iterating over all pairs, in slot order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.rangeNodes(func(n *node[K, V]) bool {
			return yield(n.Key, n.Value)
		})
	}
}

// Pairs iterates over all pairs as Pair values.
func (t *Table[K, V]) Pairs() iter.Seq[Pair[K, V]] {
	return func(yield func(Pair[K, V]) bool) {
		t.rangeNodes(func(n *node[K, V]) bool {
			return yield(n.Pair)
		})
	}
}

// Keys is the iterator version for iterating over all keys.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.rangeNodes(func(n *node[K, V]) bool {
			return yield(n.Key)
		})
	}
}

// Values is the iterator version for iterating over all values.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		t.rangeNodes(func(n *node[K, V]) bool {
			return yield(n.Value)
		})
	}
}

// ForEach calls fn for every pair.
func (t *Table[K, V]) ForEach(fn func(key K, value V)) {
	t.rangeNodes(func(n *node[K, V]) bool {
		fn(n.Key, n.Value)
		return true
	})
}

// ToSlice collects all pairs in iteration order.
func (t *Table[K, V]) ToSlice() []Pair[K, V] {
	a := make([]Pair[K, V], 0, t.size)
	t.rangeNodes(func(n *node[K, V]) bool {
		a = append(a, n.Pair)
		return true
	})
	return a
}

// ToMap collect all entries and return a map[K]V
func ToMap[K comparable, V any](t *Table[K, V]) map[K]V {
	a := make(map[K]V, t.Size())
	t.rangeNodes(func(n *node[K, V]) bool {
		a[n.Key] = n.Value
		return true
	})
	return a
}

// PutAll puts every pair of other, in other's iteration order.
func (t *Table[K, V]) PutAll(other *Table[K, V]) {
	if other == nil || other == t {
		return
	}
	other.rangeNodes(func(n *node[K, V]) bool {
		t.Put(n.Key, n.Value)
		return true
	})
}

// PutSeq puts every pair yielded by seq, e.g. maps.All(m).
func (t *Table[K, V]) PutSeq(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.Put(k, v)
	}
}

// PutPairs puts every pair in order.
func (t *Table[K, V]) PutPairs(pairs ...Pair[K, V]) {
	for _, p := range pairs {
		t.Put(p.Key, p.Value)
	}
}

// Clone creates a copy of the table with the same configuration and the
// same slot layout, so every pair stays at its generation in the clone.
func (t *Table[K, V]) Clone() *Table[K, V] {
	clone := *t
	clone.slots = make([]*node[K, V], len(t.slots))
	for i, head := range t.slots {
		var tail *node[K, V]
		for n := head; n != nil; n = n.next {
			c := &node[K, V]{Pair: n.Pair}
			if tail == nil {
				clone.slots[i] = c
			} else {
				tail.next = c
			}
			tail = c
		}
	}
	return &clone
}

// Equal reports whether both tables hold the same pairs, regardless of
// slot layout or insertion order. Values are compared with t's value
// Hasher.
func (t *Table[K, V]) Equal(other *Table[K, V]) bool {
	if t == other {
		return true
	}
	if other == nil || t.size != other.size {
		return false
	}
	equal := true
	t.rangeNodes(func(n *node[K, V]) bool {
		v, ok := other.Get(n.Key)
		equal = ok && t.values.Equal(n.Value, v)
		return equal
	})
	return equal
}

// HashCode returns an order-independent combination of every pair's hash.
// Tables that are Equal, and use the same Hashers, have equal hash codes.
func (t *Table[K, V]) HashCode() uint64 {
	var h uint64
	t.rangeNodes(func(n *node[K, V]) bool {
		h += 31*(31+t.keys.Hash(n.Key)) + t.values.Hash(n.Value)
		return true
	})
	return h
}

// String implement the formatting output interface fmt.Stringer
func (t *Table[K, V]) String() string {
	switch t.size {
	case 0:
		return "{}"
	case 1:
		return "{" + t.first().String() + "}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sep := ""
	t.rangeNodes(func(n *node[K, V]) bool {
		sb.WriteString(sep)
		sb.WriteString(n.Pair.String())
		sep = ", "
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

// IndentedString renders each pair on its own line, indented by four
// spaces, when the table holds more than one pair. Smaller tables render as
// String does.
func (t *Table[K, V]) IndentedString() string {
	if t.size < 2 {
		return t.String()
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	t.rangeNodes(func(n *node[K, V]) bool {
		for _, line := range strings.Split(n.Pair.String(), "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

func (t *Table[K, V]) first() *node[K, V] {
	var first *node[K, V]
	t.rangeNodes(func(n *node[K, V]) bool {
		first = n
		return false
	})
	return first
}
