package diff

import "fmt"

// Delta represents the type of difference found when comparing two sorted slices.
// It indicates whether an item is unique to the first slice (OLD) or second slice (NEW).
type Delta int

const (
	// NEW indicates an item that exists only in the second slice (B).
	NEW Delta = iota // +

	// OLD indicates an item that exists only in the first slice (A).
	OLD // -
)

func (d Delta) String() string {
	switch d {
	case NEW:
		return ">"
	case OLD:
		return "<"
	default:
		return "?"
	}
}

// ResultFunc is a callback function type for processing diff results.
// It is called once for each item that appears in only one of the two slices.
// If the function returns an error, the diff operation is terminated.
type ResultFunc[T any] func(Delta, T) error

// CompareFunc orders items the same way the slices being diffed are sorted.
type CompareFunc[T any] func(a, b T) int

// Result contains statistical information about the differences between two sorted slices.
type Result struct {
	// ExtraA is the count of items that exist only in A (OLD items)
	ExtraA uint64

	// ExtraB is the count of items that exist only in B (NEW items)
	ExtraB uint64

	// TotalA is the total count of items processed from A
	TotalA uint64

	// TotalB is the total count of items processed from B
	TotalB uint64

	// Common is the count of items that exist in both
	Common uint64
}

// Same reports whether A and B held the same multiset of items.
func (r *Result) Same() bool {
	return r.ExtraA == 0 && r.ExtraB == 0
}

func (r *Result) String() string {
	out := fmt.Sprintf("A: %d/%d\tB: %d/%d\tC: %d", r.ExtraA, r.TotalA, r.ExtraB, r.TotalB, r.Common)
	return out
}
