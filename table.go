// Package hab implements a layered hash table: a map whose backing array
// grows without rehashing, leaving every entry at the slot it was first
// placed in and searching older capacities on lookup.
package hab

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Table is a hash table that never rehashes. When the backing array grows,
// existing entries stay at the index they were placed at and lookups scan
// the current capacity followed by every smaller power of two down to the
// initial capacity ("generations") until the key is found.
//
// Keys that are found at an older generation are moved forward lazily, the
// next time they are written.
//
// Table is not safe for concurrent use. Every mutating method, and any
// iteration that overlaps a mutation, requires external synchronization.
type Table[K, V any] struct {
	slots           []*node[K, V]
	initialCapacity int
	loadFactor      float64
	size            int

	keys   Hasher[K]
	values Hasher[V]
	logger *zap.Logger

	totalGrowths    int
	totalMigrations int
}

// node is one link in a slot chain. The pair is never modified once the
// node is linked; replacing a value replaces the node.
type node[K, V any] struct {
	Pair[K, V]
	next *node[K, V]
}

// Pair is an immutable key-value pair.
type Pair[K, V any] struct {
	Key   K
	Value V
}

func (p Pair[K, V]) String() string {
	return fmt.Sprintf("%v -> %v", p.Key, p.Value)
}

// placement selects how put treats a key that is not already present.
type placement int

const (
	// placeAlways inserts the pair whether or not the key was found.
	placeAlways placement = iota
	// placeIfMigrated only inserts when a stale node for the key was
	// unlinked, so an absent key leaves the table untouched.
	placeIfMigrated
)

// New creates a Table for comparable keys and values using the built-in
// equality and a maphash based hash.
//
// Parameters:
//   - WithCapacity option for the initial capacity (default 4)
//   - WithLoadFactor option for the growth threshold (default 0.75)
//   - WithLogger option for debug events
func New[K, V comparable](options ...func(*Config)) (*Table[K, V], error) {
	return NewWithHasher[K, V](ComparableHasher[K]{}, ComparableHasher[V]{}, options...)
}

// NewWithHasher creates a Table with custom key and value strategies. The
// key Hasher decides slot placement and key identity; the value Hasher is
// used by Contains, RemovePair, Equal and HashCode.
//
// All arguments are validated before anything is allocated; the returned
// error wraps ErrInvalidArgument once per violation.
func NewWithHasher[K, V any](
	keys Hasher[K],
	values Hasher[V],
	options ...func(*Config),
) (*Table[K, V], error) {
	cfg := newConfig(options)
	err := cfg.validate()
	if keys == nil {
		err = multierr.Append(err, fmt.Errorf("%w: nil key hasher", ErrInvalidArgument))
	}
	if values == nil {
		err = multierr.Append(err, fmt.Errorf("%w: nil value hasher", ErrInvalidArgument))
	}
	if err != nil {
		return nil, err
	}

	capacity := nextPowOf2(cfg.capacity)
	return &Table[K, V]{
		slots:           make([]*node[K, V], capacity),
		initialCapacity: capacity,
		loadFactor:      cfg.loadFactor,
		keys:            keys,
		values:          values,
		logger:          cfg.logger,
	}, nil
}

// index maps a hash onto a slot of the given generation. Hashes are
// unsigned, so every residue is a valid index.
func (t *Table[K, V]) index(key K, generation int) int {
	return int(t.keys.Hash(key) % uint64(generation))
}

// find scans every generation from the current capacity down to the
// initial capacity and returns the first node holding key.
func (t *Table[K, V]) find(key K) *node[K, V] {
	hash := t.keys.Hash(key)
	for g := range generations(len(t.slots), t.initialCapacity) {
		for n := t.slots[hash%uint64(g)]; n != nil; n = n.next {
			if t.keys.Equal(key, n.Key) {
				return n
			}
		}
	}
	return nil
}

// Get retrieves the value stored for key.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	if n := t.find(key); n != nil {
		return n.Value, true
	}
	return value, false
}

// Entry retrieves the pair stored for key.
func (t *Table[K, V]) Entry(key K) (pair Pair[K, V], ok bool) {
	if n := t.find(key); n != nil {
		return n.Pair, true
	}
	return pair, false
}

// ContainsKey reports whether key is present at any generation.
func (t *Table[K, V]) ContainsKey(key K) bool {
	return t.find(key) != nil
}

// Contains reports whether key is present and its value equals value.
func (t *Table[K, V]) Contains(key K, value V) bool {
	n := t.find(key)
	return n != nil && t.values.Equal(value, n.Value)
}

// Put inserts or replaces the value for key and returns the pair it
// displaced, if any.
func (t *Table[K, V]) Put(key K, value V) (previous Pair[K, V], loaded bool) {
	return t.put(key, value, placeAlways)
}

// PutIfPresent replaces the value for key only when key is already present.
// An absent key leaves the table unchanged and returns loaded == false.
func (t *Table[K, V]) PutIfPresent(key K, value V) (previous Pair[K, V], loaded bool) {
	return t.put(key, value, placeIfMigrated)
}

// PutPair is Put for an existing Pair.
func (t *Table[K, V]) PutPair(p Pair[K, V]) (previous Pair[K, V], loaded bool) {
	return t.put(p.Key, p.Value, placeAlways)
}

func (t *Table[K, V]) put(key K, value V, policy placement) (previous Pair[K, V], loaded bool) {
	idx := t.index(key, len(t.slots))
	head := t.slots[idx]
	n := &node[K, V]{Pair: Pair[K, V]{Key: key, Value: value}}

	// Fast path: the key heads its chain at the current generation.
	if head != nil && t.keys.Equal(key, head.Key) {
		n.next = head.next
		t.slots[idx] = n
		return head.Pair, true
	}

	// Unlink any other node holding key, wherever it sits, so the key is
	// relinked at the current generation.
	stale := t.remove(key, nil, len(t.slots))
	if stale != nil {
		t.totalMigrations++
	} else if policy == placeIfMigrated {
		return previous, false
	}

	t.grow()
	t.size++
	if head == nil {
		t.slots[idx] = n
	} else {
		tail := head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = n
	}

	if stale != nil {
		return stale.Pair, true
	}
	return previous, false
}

// Remove deletes key and returns the removed pair.
func (t *Table[K, V]) Remove(key K) (removed Pair[K, V], loaded bool) {
	if n := t.remove(key, nil, len(t.slots)); n != nil {
		return n.Pair, true
	}
	return removed, false
}

// RemovePair deletes key only if its value equals value. A mismatched value
// leaves the entry in place.
func (t *Table[K, V]) RemovePair(key K, value V) (removed Pair[K, V], loaded bool) {
	if n := t.remove(key, &value, len(t.slots)); n != nil {
		return n.Pair, true
	}
	return removed, false
}

// remove unlinks the first node matching key (and *filter, when non-nil)
// found while scanning generations from capacity down to the initial
// capacity.
func (t *Table[K, V]) remove(key K, filter *V, capacity int) *node[K, V] {
	hash := t.keys.Hash(key)
	for g := range generations(capacity, t.initialCapacity) {
		idx := hash % uint64(g)
		var prev *node[K, V]
		for n := t.slots[idx]; n != nil; prev, n = n, n.next {
			if !t.keys.Equal(key, n.Key) || (filter != nil && !t.values.Equal(*filter, n.Value)) {
				continue
			}
			if prev == nil {
				t.slots[idx] = n.next
			} else {
				prev.next = n.next
			}
			n.next = nil
			t.size--
			return n
		}
	}
	return nil
}

// Size returns the number of key-value pairs in the table.
// This is an O(1) operation.
func (t *Table[K, V]) Size() int {
	return t.size
}

// IsEmpty reports whether the table holds no pairs.
func (t *Table[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Clear drops every pair. The capacity is kept.
func (t *Table[K, V]) Clear() {
	dropped := t.size
	clear(t.slots)
	t.size = 0
	t.logger.Debug("table cleared",
		zap.Int("capacity", len(t.slots)),
		zap.Int("dropped", dropped),
	)
}

// Capacity returns the current length of the backing array.
func (t *Table[K, V]) Capacity() int {
	return len(t.slots)
}

// InitialCapacity returns the capacity fixed at construction, the smallest
// generation lookups scan.
func (t *Table[K, V]) InitialCapacity() int {
	return t.initialCapacity
}

// LoadFactor returns the growth threshold fraction.
func (t *Table[K, V]) LoadFactor() float64 {
	return t.loadFactor
}

func (t *Table[K, V]) logGrowth(from, to int) {
	t.logger.Debug("table grew",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("size", t.size),
	)
}
