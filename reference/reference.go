// Package reference provides a deliberately simple stable sort used as an
// oracle when checking the engine: a heap sort whose ties are broken by input
// position.
package reference

import (
	"github.com/lanrat/arraysort/queue"
)

type entry[E any] struct {
	v   E
	seq int
}

// SortStableFunc returns a new slice holding the elements of a in ascending
// order according to cmp. Elements cmp reports as equal keep their input
// order. cmp must be a consistent total order.
func SortStableFunc[E any](a []E, cmp func(a, b E) int) []E {
	pq := queue.NewPriorityQueue(func(x, y entry[E]) int {
		if c := cmp(x.v, y.v); c != 0 {
			return c
		}
		return x.seq - y.seq
	})
	for i, v := range a {
		pq.Push(entry[E]{v: v, seq: i})
	}
	out := make([]E, 0, len(a))
	for pq.Len() > 0 {
		out = append(out, pq.Pop().v)
	}
	return out
}
