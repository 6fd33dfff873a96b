// Package jsarray implements a live, growable, possibly sparse array of
// runtime values. Elements live in a backing store whose capacity can exceed
// the reported length; unset slots hold the hole sentinel.
package jsarray

import (
	"github.com/cockroachdb/errors"

	"github.com/lanrat/arraysort/value"
)

// MaxLength is the largest length an array may have.
const MaxLength = 1<<32 - 1

// ErrTooLarge is returned when growing past MaxLength.
var ErrTooLarge = errors.New("invalid array length")

// Array is a live collection of values.
type Array struct {
	elements []value.Value
	length   int
}

// New returns an empty array with the given backing capacity.
func New(capacity int) *Array {
	a := &Array{elements: make([]value.Value, capacity)}
	fillHoles(a.elements)
	return a
}

// Of returns a packed array holding vs. A nil entry becomes a hole.
func Of(vs ...value.Value) *Array {
	a := &Array{elements: make([]value.Value, len(vs)), length: len(vs)}
	copy(a.elements, vs)
	fillHoles(a.elements)
	return a
}

func fillHoles(vs []value.Value) {
	for i := range vs {
		if vs[i] == nil {
			vs[i] = value.Hole
		}
	}
}

// Length returns the reported length.
func (a *Array) Length() int {
	return a.length
}

// Capacity returns the size of the backing store.
func (a *Array) Capacity() int {
	return len(a.elements)
}

// Get returns the element at i, or the hole sentinel when i is outside the
// backing store or the slot is empty.
func (a *Array) Get(i int) value.Value {
	if i < 0 || i >= len(a.elements) {
		return value.Hole
	}
	return a.elements[i]
}

// HasIndex reports whether i is within length and holds a value.
func (a *Array) HasIndex(i int) bool {
	if i < 0 || i >= a.length || i >= len(a.elements) {
		return false
	}
	return a.elements[i] != value.Hole
}

// Set stores v at i, growing the backing store and the length as needed.
// Storing the hole sentinel deletes the element. Indices beyond MaxLength are
// ignored.
func (a *Array) Set(i int, v value.Value) {
	if i < 0 || int64(i) >= MaxLength {
		return
	}
	if v == nil {
		v = value.Hole
	}
	if i >= len(a.elements) {
		if v == value.Hole {
			return
		}
		if err := a.GrowCapacity(growTo(len(a.elements), i+1)); err != nil {
			return
		}
	}
	a.elements[i] = v
	if v != value.Hole && i >= a.length {
		a.length = i + 1
	}
}

func growTo(cur, need int) int {
	n := cur + cur>>1 + 16
	if n < need {
		n = need
	}
	if int64(n) > MaxLength {
		n = int(MaxLength)
	}
	return n
}

// Push appends vs at the end of the array.
func (a *Array) Push(vs ...value.Value) {
	for _, v := range vs {
		a.Set(a.length, v)
		if v == value.Hole || v == nil {
			a.length++
		}
	}
}

// GrowCapacity makes the backing store at least n slots long.
func (a *Array) GrowCapacity(n int) error {
	if int64(n) > MaxLength {
		return errors.Wrapf(ErrTooLarge, "grow to %d", n)
	}
	if n <= len(a.elements) {
		return nil
	}
	grown := make([]value.Value, n)
	copy(grown, a.elements)
	fillHoles(grown[len(a.elements):])
	a.elements = grown
	return nil
}

// TrimCapacity shrinks the backing store to n slots, dropping elements past n.
func (a *Array) TrimCapacity(n int) {
	if n < 0 || n >= len(a.elements) {
		return
	}
	trimmed := make([]value.Value, n)
	copy(trimmed, a.elements)
	a.elements = trimmed
	if a.length > n {
		a.length = n
	}
}

// SetLength sets the reported length. Shrinking deletes the elements past
// the new length; growing leaves the new indices as holes.
func (a *Array) SetLength(n int) {
	if n < 0 || int64(n) > MaxLength {
		return
	}
	for i := n; i < a.length && i < len(a.elements); i++ {
		a.elements[i] = value.Hole
	}
	a.length = n
}

// IsPacked reports whether every index below the length holds a value.
func (a *Array) IsPacked() bool {
	if a.length > len(a.elements) {
		return false
	}
	for _, v := range a.elements[:a.length] {
		if v == value.Hole {
			return false
		}
	}
	return true
}

// Holes returns the number of holes below the length.
func (a *Array) Holes() int {
	n := 0
	for i := 0; i < a.length; i++ {
		if !a.HasIndex(i) {
			n++
		}
	}
	return n
}

// Values returns a copy of the elements below the length. Holes are kept.
func (a *Array) Values() []value.Value {
	out := make([]value.Value, a.length)
	for i := range out {
		out[i] = a.Get(i)
	}
	return out
}
