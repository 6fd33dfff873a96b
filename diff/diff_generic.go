// Package diff compares two sorted slices and reports the items that only
// one of them holds. Comparing a sort's output against an oracle's output
// this way shows elements a sort lost or invented, independent of order
// among equal items.
package diff

import (
	"github.com/cockroachdb/errors"
)

// differ holds the state for performing a diff between two sorted slices
// of type T and reporting results through a callback.
type differ[T any] struct {
	a, b       []T
	resultFunc ResultFunc[T]
	compare    CompareFunc[T]
}

// Generic performs a diff of two sorted slices of any type T.
// It compares items from both slices using the provided comparison function and calls
// resultFunc for each item that exists in only one slice. Duplicates are
// matched one for one, so the diff is a multiset difference.
//
// Both slices MUST be sorted according to compareFunc. This is not validated.
func Generic[T any](a, b []T, compareFunc CompareFunc[T], resultFunc ResultFunc[T]) (Result, error) {
	if compareFunc == nil || resultFunc == nil {
		return Result{}, errors.New("compare and result functions must not be nil")
	}
	d := differ[T]{
		a:          a,
		b:          b,
		resultFunc: resultFunc,
		compare:    compareFunc,
	}
	return d.diff()
}

func (d *differ[T]) diff() (r Result, err error) {
	i, j := 0, 0
	for i < len(d.a) && j < len(d.b) {
		c := d.compare(d.a[i], d.b[j])
		switch {
		case c > 0:
			r.TotalB++
			r.ExtraB++
			if err = d.resultFunc(NEW, d.b[j]); err != nil {
				return
			}
			j++
		case c < 0:
			r.TotalA++
			r.ExtraA++
			if err = d.resultFunc(OLD, d.a[i]); err != nil {
				return
			}
			i++
		default:
			// common
			r.Common++
			r.TotalA++
			r.TotalB++
			i++
			j++
		}
	}
	// if only A has data left
	for ; i < len(d.a); i++ {
		r.TotalA++
		r.ExtraA++
		if err = d.resultFunc(OLD, d.a[i]); err != nil {
			return
		}
	}
	// if only B has data left
	for ; j < len(d.b); j++ {
		r.TotalB++
		r.ExtraB++
		if err = d.resultFunc(NEW, d.b[j]); err != nil {
			return
		}
	}
	return
}

// Collect returns a ResultFunc that records every difference into out.
func Collect[T any](out *[]Item[T]) ResultFunc[T] {
	return func(d Delta, v T) error {
		*out = append(*out, Item[T]{Delta: d, Value: v})
		return nil
	}
}

// Item is a single difference recorded by Collect.
type Item[T any] struct {
	Delta Delta
	Value T
}
