package arraysort

import (
	"cmp"
)

// Ordered sorts a slice of cmp.Ordered values in place in ascending order.
// It is a wrapper around SortFunc that provides cmp.Compare as the
// comparison. NaNs order before every other float, as with cmp.Compare.
// The only possible error is an invalid config.
func Ordered[T cmp.Ordered](a []T, config *Config) error {
	return SortFunc(a, compareOrdered[T], config)
}

func compareOrdered[T cmp.Ordered](a, b T) (int, error) {
	return cmp.Compare(a, b), nil
}
