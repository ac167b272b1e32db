package hab

// Iterator walks a table's pairs once, in slot order. It is not
// restartable; call Table.Iterator again for a new traversal. Mutating the
// table while an Iterator is in use is undefined.
type Iterator[K, V any] struct {
	t     *Table[K, V]
	index int
	node  *node[K, V]
}

// Iterator returns a fresh Iterator positioned before the first pair.
func (t *Table[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{t: t, index: -1}
}

// HasNext reports whether Next will return a pair.
func (it *Iterator[K, V]) HasNext() bool {
	if it.node != nil && it.node.next != nil {
		return true
	}
	for i := it.index + 1; i < len(it.t.slots); i++ {
		if it.t.slots[i] != nil {
			return true
		}
	}
	return false
}

// Next returns the next pair, or ErrExhausted once every pair was returned.
func (it *Iterator[K, V]) Next() (Pair[K, V], error) {
	if it.node != nil {
		it.node = it.node.next
	}
	for it.node == nil {
		if it.index+1 >= len(it.t.slots) {
			it.index = len(it.t.slots)
			return Pair[K, V]{}, ErrExhausted
		}
		it.index++
		it.node = it.t.slots[it.index]
	}
	return it.node.Pair, nil
}
