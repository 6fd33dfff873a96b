package main

import (
	"cmp"
	"context"
	"math/rand"
	"slices"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lanrat/arraysort"
	"github.com/lanrat/arraysort/diff"
	"github.com/lanrat/arraysort/reference"
	"github.com/lanrat/arraysort/value"
)

// thrownValue is thrown by the comparator in the abort checks.
var thrownValue = value.String("sortcheck abort")

type summary struct {
	checked int64
	aborted int64
	largest int64
}

type checker struct {
	opts   options
	config *arraysort.Config
	logger *zap.Logger

	checked atomic.Int64
	aborted atomic.Int64
	largest atomic.Int64
}

func newChecker(opts options, logger *zap.Logger) *checker {
	cfg := opts.config()
	cfg.Logger = logger.Named("engine")
	return &checker{opts: opts, config: cfg, logger: logger}
}

// run checks opts.Iterations inputs, at most opts.Workers at a time. The
// first failed check cancels the rest and is returned.
func (c *checker) run(ctx context.Context) (summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i := 0; i < c.opts.Iterations; i++ {
		g.Go(func() error {
			return c.checkOne(ctx, i)
		})
	}
	err := g.Wait()
	return summary{
		checked: c.checked.Load(),
		aborted: c.aborted.Load(),
		largest: c.largest.Load(),
	}, err
}

func (c *checker) checkOne(ctx context.Context, i int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seed := c.opts.Seed + int64(i)
	rng := rand.New(rand.NewSource(seed))
	name := c.opts.Shapes[i%len(c.opts.Shapes)]
	n := rng.Intn(c.opts.MaxLength + 1)
	keys := shapes[name](rng, n)

	// one input in eight throws from the comparator part way through
	throwAt := -1
	if rng.Intn(8) == 0 {
		throwAt = 1 + rng.Intn(4*n+1)
	}

	log := c.logger.With(zap.String("shape", name), zap.Int("length", n), zap.Int64("seed", seed))
	var err error
	if throwAt > 0 {
		err = c.checkAbort(keys, name == "holes", throwAt)
	} else {
		err = c.checkSort(keys, name == "holes")
	}
	if err != nil {
		log.Error("check failed", zap.Error(err))
		return errors.Wrapf(err, "shape %s length %d seed %d", name, n, seed)
	}
	log.Debug("checked", zap.Bool("abort", throwAt > 0))

	c.checked.Add(1)
	for {
		cur := c.largest.Load()
		if int64(n) <= cur || c.largest.CompareAndSwap(cur, int64(n)) {
			break
		}
	}
	return nil
}

// byKey is the order the engine is asked to produce.
func byKey(x, y value.Value) int {
	return cmp.Compare(entryOf(x).key, entryOf(y).key)
}

// byKeySeq is the order a stable sort by key must produce.
func byKeySeq(x, y value.Value) int {
	a, b := entryOf(x), entryOf(y)
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func keyFunction(calls *int, throwAt int) value.Value {
	return value.NewFunction(func(this value.Value, args []value.Value) (value.Value, error) {
		*calls++
		if *calls == throwAt {
			return nil, value.Throw(thrownValue)
		}
		return value.Int(entryOf(args[0]).key - entryOf(args[1]).key), nil
	})
}

func (c *checker) checkSort(keys []int, holes bool) error {
	arr, present := build(keys, holes)
	want := reference.SortStableFunc(present, byKey)
	before := arr.Values()

	var calls int
	sorted, err := arraysort.ToSorted(arr, keyFunction(&calls, -1), c.config)
	if err != nil {
		return errors.Wrap(err, "toSorted")
	}
	if !slices.Equal(before, arr.Values()) {
		return errors.New("toSorted modified its receiver")
	}
	if err := compareSorted(sorted.Values(), want, value.Undefined); err != nil {
		return errors.Wrap(err, "toSorted")
	}

	if err := arraysort.SortArray(arr, keyFunction(&calls, -1), c.config); err != nil {
		return errors.Wrap(err, "sort")
	}
	if arr.Length() != len(keys) {
		return errors.Newf("length changed from %d to %d", len(keys), arr.Length())
	}
	return errors.Wrap(compareSorted(arr.Values(), want, value.Hole), "sort")
}

// compareSorted checks that got holds want followed only by fill.
func compareSorted(got, want []value.Value, fill value.Value) error {
	if len(got) < len(want) {
		return errors.Newf("%d elements, want at least %d", len(got), len(want))
	}
	head := got[:len(want)]
	ok, err := arraysort.IsSortedFunc(head, func(x, y value.Value) (int, error) {
		return byKeySeq(x, y), nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("result is not stably sorted")
	}

	var lost, extra int
	res, err := diff.Generic(head, want, byKeySeq, func(d diff.Delta, v value.Value) error {
		if d == diff.OLD {
			extra++
		} else {
			lost++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !res.Same() {
		return errors.Newf("%d elements lost and %d invented (%s)", lost, extra, res.String())
	}
	for i, v := range got[len(want):] {
		if v != fill {
			return errors.Newf("index %d holds %s, want %s", len(want)+i, value.Inspect(v), value.Inspect(fill))
		}
	}
	return nil
}

func (c *checker) checkAbort(keys []int, holes bool, throwAt int) error {
	arr, present := build(keys, holes)
	before := arr.Values()

	var calls int
	err := arraysort.SortArray(arr, keyFunction(&calls, throwAt), c.config)
	if calls < throwAt {
		// the sort finished before reaching the throw
		if err != nil {
			return errors.Wrap(err, "sort")
		}
		return compareSorted(arr.Values(), reference.SortStableFunc(present, byKey), value.Hole)
	}

	c.aborted.Add(1)
	if calls > throwAt {
		return errors.Newf("comparator called %d times after throwing", calls-throwAt)
	}
	if v, ok := value.Thrown(err); !ok || v != thrownValue {
		return errors.Newf("got %v, want the thrown value", err)
	}
	if !slices.Equal(before, arr.Values()) {
		return errors.New("aborted sort modified its receiver")
	}
	return nil
}
