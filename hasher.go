package hab

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// A Hasher defines a hash function and an equivalence relation over values
// of type T. Implementations must satisfy Equal(a, b) => Hash(a) == Hash(b).
type Hasher[T any] interface {
	Hash(v T) uint64
	Equal(a, b T) bool
}

// seed is shared by every ComparableHasher in the process so that two
// tables holding equal pairs report equal hash codes.
var seed = maphash.MakeSeed()

// ComparableHasher is the default Hasher for comparable types. Its Equal is
// consistent with ==.
//
// Interface-typed keys hash their dynamic value; a dynamic type that is not
// comparable panics, as it would in a built-in map.
type ComparableHasher[T comparable] struct{}

func (ComparableHasher[T]) Hash(v T) uint64   { return maphash.Comparable(seed, v) }
func (ComparableHasher[T]) Equal(a, b T) bool { return a == b }

// StringHasher hashes strings with xxhash. The result does not depend on
// the process, which keeps slot layout reproducible between runs.
type StringHasher struct{}

func (StringHasher) Hash(v string) uint64   { return xxhash.Sum64String(v) }
func (StringHasher) Equal(a, b string) bool { return a == b }

// BytesHasher hashes byte slices by content with xxhash, so slices can be
// used as keys although they are not comparable.
type BytesHasher struct{}

func (BytesHasher) Hash(v []byte) uint64   { return xxhash.Sum64(v) }
func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// HasherFunc adapts a pair of functions to the Hasher interface.
type HasherFunc[T any] struct {
	HashFn  func(v T) uint64
	EqualFn func(a, b T) bool
}

func (h HasherFunc[T]) Hash(v T) uint64   { return h.HashFn(v) }
func (h HasherFunc[T]) Equal(a, b T) bool { return h.EqualFn(a, b) }
