package arraysort_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanrat/arraysort"
	"github.com/lanrat/arraysort/value"
)

// compareFn wraps f as a callable runtime value.
func compareFn(f func(x, y value.Value) (value.Value, error)) value.Value {
	return value.NewFunction(func(this value.Value, args []value.Value) (value.Value, error) {
		return f(args[0], args[1])
	})
}

// numericFn behaves like (a, b) => a - b over Int values.
func numericFn() value.Value {
	return compareFn(func(x, y value.Value) (value.Value, error) {
		return x.(value.Int) - y.(value.Int), nil
	})
}

func ints(vs ...int) []value.Value {
	out := make([]value.Value, len(vs))
	for i, v := range vs {
		out[i] = value.Int(v)
	}
	return out
}

func TestNewComparatorRejectsNonCallable(t *testing.T) {
	for _, fn := range []value.Value{value.Int(1), value.String("f"), value.Null, value.NewObject(nil)} {
		_, err := arraysort.NewComparator(fn)
		require.Error(t, err)
		assert.True(t, errors.Is(err, value.ErrTypeError), "got %v", err)
	}

	for _, fn := range []value.Value{nil, value.Undefined} {
		c, err := arraysort.NewComparator(fn)
		require.NoError(t, err)
		assert.False(t, c.HasUserFunction())
	}
}

func TestCompareHolesAndUndefined(t *testing.T) {
	for _, fn := range []value.Value{value.Undefined, numericFn()} {
		c, err := arraysort.NewComparator(fn)
		require.NoError(t, err)

		for _, tt := range []struct {
			x, y value.Value
			want int
		}{
			{value.Hole, value.Hole, 0},
			{value.Hole, value.Undefined, 1},
			{value.Undefined, value.Hole, -1},
			{value.Hole, value.Int(1), 1},
			{value.Int(1), value.Hole, -1},
			{value.Undefined, value.Undefined, 0},
			{value.Undefined, value.Int(1), 1},
			{value.Int(1), value.Undefined, -1},
		} {
			got, err := c.Compare(tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "Compare(%s, %s)", value.Inspect(tt.x), value.Inspect(tt.y))
		}
	}
}

func TestCompareDefault(t *testing.T) {
	c, err := arraysort.NewComparator(nil)
	require.NoError(t, err)

	for _, tt := range []struct {
		x, y value.Value
		want int
	}{
		{value.Int(10), value.Int(9), -1},
		{value.Int(9), value.Int(10), 1},
		{value.Int(-1), value.Int(-2), -1},
		{value.Int(-1), value.Int(1), -1},
		{value.Int(100), value.Int(100), 0},
		{value.Int(1), value.Number(1.5), -1},
		{value.Number(1e21), value.Int(2), -1},
		{value.Number(math.NaN()), value.String("NaN"), 0},
		{value.String("b"), value.String("a"), 1},
		{value.String("a"), value.String("ab"), -1},
		{value.Null, value.String("null"), 0},
		{value.Bool(true), value.String("t"), 1},
		// UTF-16 code unit order puts surrogate pairs before U+FF61
		{value.String("\U0001F600"), value.String("\uFF61"), -1},
		{value.NewObject(nil), value.String("[object Object]"), 0},
	} {
		got, err := c.Compare(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Compare(%s, %s)", value.Inspect(tt.x), value.Inspect(tt.y))
	}
}

func TestCompareDefaultInvalidUTF8(t *testing.T) {
	c, err := arraysort.NewComparator(nil)
	require.NoError(t, err)

	for _, tt := range []struct {
		x, y string
		want int
	}{
		{"\xed\xa0\x80", "\xed\xaf\xbf", -1},
		{"\xed\xb0\x80", "\xed\xa0\x80", 1},
		{"\xff", "\xfe", 1},
		{"\xff", "\xff", 0},
	} {
		got, err := c.Compare(value.String(tt.x), value.String(tt.y))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Compare(%q, %q)", tt.x, tt.y)
	}

	items := []value.Value{value.String("\xff"), value.String("\xfe"), value.String("\xff"), value.String("\xed\xa0\x80"), value.String("a")}
	require.NoError(t, arraysort.Sort(items, value.Undefined, nil))
	assert.Equal(t, []value.Value{
		value.String("a"), value.String("\xed\xa0\x80"), value.String("\xfe"), value.String("\xff"), value.String("\xff"),
	}, items)
}

func TestCompareDefaultSymbol(t *testing.T) {
	c, err := arraysort.NewComparator(nil)
	require.NoError(t, err)

	_, err = c.Compare(&value.Symbol{Description: "s"}, value.String("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, value.ErrTypeError))
}

func TestCompareUserResultCoercion(t *testing.T) {
	for _, tt := range []struct {
		name string
		res  value.Value
		want int
	}{
		{"int", value.Int(-5), -1},
		{"number", value.Number(0.25), 1},
		{"nan", value.Number(math.NaN()), 0},
		{"negative zero", value.Number(math.Copysign(0, -1)), 0},
		{"string", value.String(" -3 "), -1},
		{"bool", value.Bool(true), 1},
		{"undefined", nil, 0},
		{"null", value.Null, 0},
		{"infinity", value.Number(math.Inf(-1)), -1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, err := arraysort.NewComparator(compareFn(func(x, y value.Value) (value.Value, error) {
				return tt.res, nil
			}))
			require.NoError(t, err)
			got, err := c.Compare(value.Int(1), value.Int(2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareUserErrors(t *testing.T) {
	thrown := value.String("boom")
	c, err := arraysort.NewComparator(compareFn(func(x, y value.Value) (value.Value, error) {
		return nil, value.Throw(thrown)
	}))
	require.NoError(t, err)
	_, err = c.Compare(value.Int(1), value.Int(2))
	v, ok := value.Thrown(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, thrown, v)

	// coercing the result runs user code too
	errValueOf := errors.New("valueOf failed")
	c, err = arraysort.NewComparator(compareFn(func(x, y value.Value) (value.Value, error) {
		return &value.Object{Class: "Object", ToPrimitive: func(value.Hint) (value.Value, error) {
			return nil, errValueOf
		}}, nil
	}))
	require.NoError(t, err)
	_, err = c.Compare(value.Int(1), value.Int(2))
	assert.Equal(t, errValueOf, err)
}
