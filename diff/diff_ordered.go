package diff

import (
	"cmp"
)

// Ordered performs a diff of two sorted slices of cmp.Ordered types.
// It is a wrapper around Generic that provides cmp.Compare as the comparison.
func Ordered[T cmp.Ordered](a, b []T, resultFunc ResultFunc[T]) (Result, error) {
	return Generic(a, b, cmp.Compare[T], resultFunc)
}
