package arraysort

import (
	"github.com/lanrat/arraysort/value"
)

// CompareFunc is a function type for comparing two items of type E.
// Returns a negative integer if a should be ordered before b, zero if they are equal,
// and a positive integer if a should be ordered after b.
// A non-nil error is an abrupt completion: the sort stops before making any
// further comparison and returns that error unchanged.
// The function may panic; the panic is recovered and reported as a ComparisonError.
type CompareFunc[E any] func(a, b E) (int, error)

// Collection is a live, indexable collection the collector reads from and
// writes back to.
type Collection interface {
	// Length returns the reported length.
	Length() int
	// Capacity returns the size of the backing storage.
	Capacity() int
	// Get returns the value at i, value.Hole if there is none.
	Get(i int) value.Value
	// Set stores v at i. Storing value.Hole clears the index.
	Set(i int, v value.Value)
	// HasIndex reports whether i holds a value.
	HasIndex(i int) bool
	// GrowCapacity makes the backing storage at least n long.
	GrowCapacity(n int) error
	// TrimCapacity shrinks the backing storage to n. The engine never
	// calls it: a write-back keeps the storage it finds, even when holes
	// were dropped. It is here so a comparator can shrink the receiver
	// through the same interface mid-sort.
	TrimCapacity(n int)
	// SetLength updates the reported length.
	SetLength(n int)
}

// Packed is implemented by collections that can report that they hold no holes.
type Packed interface {
	IsPacked() bool
}

// HolesPolicy selects how absent indices are treated when building a snapshot.
type HolesPolicy int

const (
	// SkipHoles includes only indices the collection reports as present.
	SkipHoles HolesPolicy = iota
	// ReadThroughHoles includes every index, holes and all.
	ReadThroughHoles
)

func (h HolesPolicy) String() string {
	switch h {
	case SkipHoles:
		return "skip-holes"
	case ReadThroughHoles:
		return "read-through-holes"
	default:
		return "unknown"
	}
}
