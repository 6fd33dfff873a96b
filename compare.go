package arraysort

import (
	"strconv"

	"github.com/lanrat/arraysort/value"
)

// Comparator orders runtime values for Array.prototype.sort. Holes sort
// after everything, undefined sorts after every other value, and the rest is
// ordered by the user's compare function or, without one, by string form.
type Comparator struct {
	fn value.Value // callable, or nil for the default ordering
}

// NewComparator wraps comparefn, which must be undefined or callable.
func NewComparator(comparefn value.Value) (*Comparator, error) {
	if comparefn == nil || value.IsUndefined(comparefn) {
		return &Comparator{}, nil
	}
	if !value.IsCallable(comparefn) {
		return nil, value.NewTypeError("the comparison function must be either a function or undefined")
	}
	return &Comparator{fn: comparefn}, nil
}

// HasUserFunction reports whether c calls user code.
func (c *Comparator) HasUserFunction() bool {
	return c.fn != nil
}

// Compare returns a negative number if x sorts before y, a positive number
// if y sorts before x, and zero if they rank equal. Errors raised by the user
// function or by coercing its result or the operands are returned unchanged.
func (c *Comparator) Compare(x, y value.Value) (int, error) {
	xHole, yHole := value.IsHole(x), value.IsHole(y)
	switch {
	case xHole && yHole:
		return 0, nil
	case xHole:
		return 1, nil
	case yHole:
		return -1, nil
	}

	xUndef, yUndef := value.IsUndefined(x), value.IsUndefined(y)
	switch {
	case xUndef && yUndef:
		return 0, nil
	case xUndef:
		return 1, nil
	case yUndef:
		return -1, nil
	}

	if c.fn != nil {
		return c.callUser(x, y)
	}
	return compareDefault(x, y)
}

func (c *Comparator) callUser(x, y value.Value) (int, error) {
	res, err := value.Call(c.fn, value.Undefined, x, y)
	if err != nil {
		return 0, err
	}
	// common case: the callback returned a small integer
	if i, ok := res.(value.Int); ok {
		return sign(int64(i)), nil
	}
	f, err := value.ToNumber(res)
	if err != nil {
		return 0, err
	}
	switch {
	case f < 0:
		return -1, nil
	case f > 0:
		return 1, nil
	default: // zero, negative zero and NaN
		return 0, nil
	}
}

// compareDefault compares the string forms of x and y by UTF-16 code units.
func compareDefault(x, y value.Value) (int, error) {
	switch xv := x.(type) {
	case value.Int:
		if yv, ok := y.(value.Int); ok {
			return compareIntStrings(int64(xv), int64(yv)), nil
		}
	case value.String:
		if yv, ok := y.(value.String); ok {
			return value.CompareUTF16(string(xv), string(yv)), nil
		}
	}

	xs, err := value.ToString(x)
	if err != nil {
		return 0, err
	}
	ys, err := value.ToString(y)
	if err != nil {
		return 0, err
	}
	return value.CompareUTF16(xs, ys), nil
}

// compareIntStrings compares the decimal forms of x and y without allocating.
func compareIntStrings(x, y int64) int {
	if x == y {
		return 0
	}
	var xb, yb [20]byte
	xs := strconv.AppendInt(xb[:0], x, 10)
	ys := strconv.AppendInt(yb[:0], y, 10)
	n := min(len(xs), len(ys))
	for i := 0; i < n; i++ {
		if xs[i] != ys[i] {
			if xs[i] < ys[i] {
				return -1
			}
			return 1
		}
	}
	return sign(int64(len(xs) - len(ys)))
}

func sign(i int64) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}
