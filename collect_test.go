package arraysort_test

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lanrat/arraysort"
	"github.com/lanrat/arraysort/jsarray"
	"github.com/lanrat/arraysort/reference"
	"github.com/lanrat/arraysort/value"
)

func TestSortArrayHoleOrdering(t *testing.T) {
	arr := jsarray.Of(value.Int(1), value.Hole, value.Undefined, value.Int(0))
	require.NoError(t, arraysort.SortArray(arr, value.Undefined, nil))

	assert.Equal(t, 4, arr.Length())
	assert.Equal(t, []value.Value{value.Int(0), value.Int(1), value.Undefined, value.Hole}, arr.Values())
	assert.False(t, arr.HasIndex(3))
}

func TestSortArraySkipHolesRoundTrip(t *testing.T) {
	arr := jsarray.New(3)
	arr.Set(0, value.Int(2))
	arr.Set(2, value.Int(1))
	require.Equal(t, 3, arr.Length())

	calls := 0
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		calls++
		assert.False(t, value.IsHole(x) || value.IsHole(y), "comparator saw a hole")
		return x.(value.Int) - y.(value.Int), nil
	})
	require.NoError(t, arraysort.SortArray(arr, fn, nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, arr.Length())
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Hole}, arr.Values())
	assert.Equal(t, 1, arr.Holes())
}

func TestSortArrayUndefinedNeverPassedToComparator(t *testing.T) {
	arr := jsarray.Of(value.Undefined, value.Int(3), value.Undefined, value.Int(1), value.Int(2))
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		if value.IsUndefined(x) || value.IsUndefined(y) {
			t.Fatal("comparator called with undefined")
		}
		return x.(value.Int) - y.(value.Int), nil
	})
	require.NoError(t, arraysort.SortArray(arr, fn, nil))
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3), value.Undefined, value.Undefined}, arr.Values())
}

func TestSortArrayDefaultOrder(t *testing.T) {
	arr := jsarray.Of(ints(10, 9, 1, 100, -1, 25)...)
	require.NoError(t, arraysort.SortArray(arr, nil, nil))
	assert.Equal(t, ints(-1, 1, 10, 100, 25, 9), arr.Values())
}

type keyed struct {
	key, order int
}

func TestSortArrayStable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	arr := jsarray.New(0)
	for i := 0; i < 2000; i++ {
		arr.Push(value.NewObject(keyed{key: rng.Intn(10), order: i}))
	}
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		return value.Int(x.(*value.Object).Data.(keyed).key - y.(*value.Object).Data.(keyed).key), nil
	})
	require.NoError(t, arraysort.SortArray(arr, fn, nil))

	prev := arr.Get(0).(*value.Object).Data.(keyed)
	for i := 1; i < arr.Length(); i++ {
		cur := arr.Get(i).(*value.Object).Data.(keyed)
		if cur.key < prev.key || (cur.key == prev.key && cur.order < prev.order) {
			t.Fatalf("index %d: %v after %v", i, cur, prev)
		}
		prev = cur
	}
}

func TestSortArrayException(t *testing.T) {
	orig := ints(5, 3, 9, 1, 7, 2, 8, 6, 4, 0)
	arr := jsarray.Of(orig...)
	calls := 0
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		calls++
		if calls == 3 {
			return nil, value.Throw(value.String("boom"))
		}
		return x.(value.Int) - y.(value.Int), nil
	})

	err := arraysort.SortArray(arr, fn, nil)
	thrown, ok := value.Thrown(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, value.String("boom"), thrown)
	assert.Equal(t, 3, calls, "comparator called after throwing")
	assert.Equal(t, orig, arr.Values(), "receiver modified by a failed sort")
}

func TestSortArrayTypeError(t *testing.T) {
	arr := jsarray.Of(ints(2, 1)...)
	err := arraysort.SortArray(arr, value.Int(1), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, value.ErrTypeError))
	assert.Equal(t, ints(2, 1), arr.Values())

	// validated before the length is looked at
	err = arraysort.SortArray(jsarray.New(0), value.String("x"), nil)
	assert.True(t, errors.Is(err, value.ErrTypeError))
}

func TestSortArrayShortNeverCompares(t *testing.T) {
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		t.Fatal("comparator called")
		return nil, nil
	})
	for _, arr := range []*jsarray.Array{jsarray.New(0), jsarray.Of(value.Int(1)), jsarray.Of(value.Hole)} {
		require.NoError(t, arraysort.SortArray(arr, fn, nil))
	}
}

func TestSortArrayIdempotent(t *testing.T) {
	arr := jsarray.Of(value.String("b"), value.Hole, value.Undefined, value.String("a"), value.Hole, value.Int(3))
	require.NoError(t, arraysort.SortArray(arr, nil, nil))
	once := arr.Values()
	require.NoError(t, arraysort.SortArray(arr, nil, nil))
	assert.Equal(t, once, arr.Values())
	assert.Equal(t, []value.Value{value.Int(3), value.String("a"), value.String("b"), value.Undefined, value.Hole, value.Hole}, once)
}

func TestSortArrayComparatorGrowsReceiver(t *testing.T) {
	arr := jsarray.Of(ints(3, 1, 2)...)
	pushed := false
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		if !pushed {
			pushed = true
			arr.Push(value.Int(99))
		}
		return x.(value.Int) - y.(value.Int), nil
	})
	require.NoError(t, arraysort.SortArray(arr, fn, nil))
	assert.Equal(t, ints(1, 2, 3, 99), arr.Values())
}

func TestSortArrayComparatorShrinksReceiver(t *testing.T) {
	arr := jsarray.Of(ints(3, 1, 2, 5, 4)...)
	shrunk := false
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		if !shrunk {
			shrunk = true
			arr.SetLength(0)
			arr.TrimCapacity(0)
		}
		return x.(value.Int) - y.(value.Int), nil
	})
	require.NoError(t, arraysort.SortArray(arr, fn, nil))
	assert.Equal(t, ints(1, 2, 3, 4, 5), arr.Values())
}

// trimCounter counts TrimCapacity calls.
type trimCounter struct {
	*jsarray.Array
	trims int
}

func (c *trimCounter) TrimCapacity(n int) {
	c.trims++
	c.Array.TrimCapacity(n)
}

func TestSortArrayKeepsCapacity(t *testing.T) {
	arr := jsarray.New(8)
	for i, v := range []value.Value{value.Int(3), value.Hole, value.Int(1), value.Hole, value.Undefined, value.Int(2)} {
		arr.Set(i, v)
	}
	c := &trimCounter{Array: arr}
	require.NoError(t, arraysort.SortArray(c, nil, nil))

	assert.Zero(t, c.trims)
	assert.Equal(t, 8, arr.Capacity())
	assert.Equal(t, 6, arr.Length())
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3), value.Undefined, value.Hole, value.Hole}, arr.Values())
}

func TestSortArrayAllocationFailure(t *testing.T) {
	arr := jsarray.Of(ints(3, 2, 1)...)
	err := arraysort.SortArray(arr, nil, &arraysort.Config{MaxLength: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, arraysort.ErrAllocationFailed), "got %v", err)
	assert.Equal(t, ints(3, 2, 1), arr.Values())
}

// growFailure is a collection whose storage cannot grow.
type growFailure struct {
	*jsarray.Array
}

var errNoGrow = errors.New("no room")

func (g growFailure) GrowCapacity(n int) error {
	if n > g.Capacity() {
		return errNoGrow
	}
	return nil
}

func TestCopySortedListToReceiverGrowFailure(t *testing.T) {
	c := growFailure{jsarray.Of(ints(1)...)}
	err := arraysort.CopySortedListToReceiver(c, ints(1, 2, 3), 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoGrow))
	assert.Contains(t, err.Error(), "resource error")
}

func TestCopySortedListToReceiverClearsDroppedHoles(t *testing.T) {
	arr := jsarray.Of(ints(5, 6, 7, 8)...)
	require.NoError(t, arraysort.CopySortedListToReceiver(arr, ints(1, 2), 4))
	assert.Equal(t, 4, arr.Length())
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Hole, value.Hole}, arr.Values())
}

// presentHoles reports every index below the length as present, even the
// ones that read back as holes.
type presentHoles struct {
	*jsarray.Array
}

func (p presentHoles) HasIndex(i int) bool {
	return i >= 0 && i < p.Length()
}

func TestSortIndexedPropertiesFoldsPresentHoles(t *testing.T) {
	arr := jsarray.Of(value.Int(2), value.Hole, value.Int(1))
	cmp, err := arraysort.NewComparator(nil)
	require.NoError(t, err)

	got, err := arraysort.SortIndexedProperties(presentHoles{arr}, 3, cmp, arraysort.SkipHoles, nil)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Undefined}, got)

	got, err = arraysort.SortIndexedProperties(arr, 3, cmp, arraysort.SkipHoles, nil)
	require.NoError(t, err)
	assert.Equal(t, ints(1, 2), got)

	got, err = arraysort.SortIndexedProperties(arr, 3, cmp, arraysort.ReadThroughHoles, nil)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Hole}, got)
}

func TestSortIndexedPropertiesReadsPastCapacity(t *testing.T) {
	arr := jsarray.Of(ints(2, 1)...)
	cmp, err := arraysort.NewComparator(nil)
	require.NoError(t, err)

	got, err := arraysort.SortIndexedProperties(arr, 4, cmp, arraysort.ReadThroughHoles, nil)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Hole, value.Hole}, got)
}

func TestToSorted(t *testing.T) {
	arr := jsarray.Of(value.Int(3), value.Hole, value.Int(1), value.Undefined)
	out, err := arraysort.ToSorted(arr, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []value.Value{value.Int(1), value.Int(3), value.Undefined, value.Undefined}, out.Values())
	assert.True(t, out.IsPacked())
	assert.Equal(t, []value.Value{value.Int(3), value.Hole, value.Int(1), value.Undefined}, arr.Values())

	_, err = arraysort.ToSorted(arr, value.Bool(true), nil)
	assert.True(t, errors.Is(err, value.ErrTypeError))
}

func TestSortMaterialized(t *testing.T) {
	items := []value.Value{value.Number(2.5), value.Int(-3), value.Number(-0.5), value.Int(10)}
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		xf, _ := value.ToNumber(x)
		yf, _ := value.ToNumber(y)
		return value.Number(xf - yf), nil
	})
	require.NoError(t, arraysort.Sort(items, fn, nil))
	assert.Equal(t, []value.Value{value.Int(-3), value.Number(-0.5), value.Number(2.5), value.Int(10)}, items)
}

func TestSortArrayMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	cmp, err := arraysort.NewComparator(numericFn())
	require.NoError(t, err)

	for _, size := range []int{40, 700, 20000} {
		arr := jsarray.New(size)
		var present []value.Value
		for i := 0; i < size; i++ {
			if rng.Intn(10) == 0 {
				continue
			}
			v := value.Int(rng.Intn(size))
			arr.Set(i, v)
			present = append(present, v)
		}
		arr.SetLength(size)

		want := reference.SortStableFunc(present, func(x, y value.Value) int {
			c, err := cmp.Compare(x, y)
			require.NoError(t, err)
			return c
		})
		require.NoError(t, arraysort.SortArray(arr, numericFn(), nil))

		got := arr.Values()
		require.Equal(t, want, got[:len(want)])
		for _, v := range got[len(want):] {
			require.True(t, value.IsHole(v))
		}
	}
}

func TestSortArrayLogsAbort(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &arraysort.Config{Logger: zap.New(core)}

	arr := jsarray.Of(ints(3, 1, 2)...)
	fn := compareFn(func(x, y value.Value) (value.Value, error) {
		return nil, value.Throw(value.Int(1))
	})
	require.Error(t, arraysort.SortArray(arr, fn, cfg))

	aborted := logs.FilterMessage("sort aborted").All()
	require.Len(t, aborted, 1)
	assert.Equal(t, true, aborted[0].ContextMap()["userComparator"])
	assert.Equal(t, 1, logs.FilterMessage("sort finished").Len())
}

func TestSortArrayWithTestLogger(t *testing.T) {
	arr := jsarray.Of(ints(5, 4, 3, 2, 1)...)
	cfg := &arraysort.Config{Logger: zaptest.NewLogger(t)}
	require.NoError(t, arraysort.SortArray(arr, nil, cfg))
	assert.Equal(t, ints(1, 2, 3, 4, 5), arr.Values())
}
