// Package arraysort implements the stable sorting engine behind a runtime's
// Array.prototype.sort: an adaptive merge sort (TimSort) driven by a
// comparator that may fail, plus the collector that snapshots a live
// collection before sorting and writes the result back afterwards.
package arraysort

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// run is a sorted slice a[base:base+len] waiting to be merged.
type run struct {
	base int
	len  int
}

type sortStats struct {
	comparisons int
	runs        int
	merges      int
	gallops     int
}

// sortState is the state of a single SortFunc call. It owns the merge buffer
// and is discarded when the call returns.
type sortState[E any] struct {
	a   []E
	cmp CompareFunc[E]

	minMerge int
	// gallopThreshold is the configured MinGallop; minGallop adapts around it.
	gallopThreshold int
	minGallop       int

	tmp     []E
	pending []run
	stats   sortStats
}

// SortFunc sorts a in place in ascending order as determined by cmp. The sort
// is stable: elements cmp reports as equal keep their relative order.
//
// The first error returned by cmp stops the sort before any further
// comparison and is returned unchanged. When SortFunc fails, a still holds a
// permutation of its original elements, in an unspecified order. A
// comparator that is not a consistent total order produces an unspecified
// permutation but never loses or duplicates elements.
//
// config can be nil to use the defaults, or only set the non-default values desired.
func SortFunc[E any](a []E, cmp CompareFunc[E], config *Config) error {
	c, err := mergeConfig(config)
	if err != nil {
		return err
	}
	if len(a) < 2 {
		return nil
	}
	s := newSortState(a, cmp, c)
	err = s.sort()
	s.logStats(c.Logger, err)
	return err
}

func newSortState[E any](a []E, cmp CompareFunc[E], c *Config) *sortState[E] {
	tmpLen := c.InitialTmpLength
	if len(a) < 2*tmpLen {
		tmpLen = len(a) >> 1
	}
	return &sortState[E]{
		a:               a,
		cmp:             cmp,
		minMerge:        c.MinMerge,
		gallopThreshold: c.MinGallop,
		minGallop:       c.MinGallop,
		tmp:             make([]E, tmpLen),
		pending:         make([]run, 0, stackSize(len(a))),
	}
}

// stackSize bounds the pending run stack; the merge invariants keep run
// lengths growing at least as fast as the Fibonacci numbers.
func stackSize(n int) int {
	switch {
	case n < 120:
		return 5
	case n < 1542:
		return 10
	case n < 119151:
		return 24
	default:
		return 49
	}
}

// compare calls the user comparison, turning a panic into an error so the
// merge routines can restore their buffers.
func (s *sortState[E]) compare(a, b E) (c int, err error) {
	s.stats.comparisons++
	defer func() {
		if r := recover(); r != nil {
			err = NewComparisonError(r, "compare")
		}
	}()
	return s.cmp(a, b)
}

func (s *sortState[E]) sort() error {
	lo, hi := 0, len(s.a)
	nRemaining := hi - lo

	// small arrays: one run padded with binary insertion sort, no merges
	if nRemaining < s.minMerge {
		initRunLen, err := s.countRunAndMakeAscending(lo, hi)
		if err != nil {
			return err
		}
		s.stats.runs++
		return s.binarySort(lo, hi, lo+initRunLen)
	}

	minRun := minRunLength(nRemaining, s.minMerge)
	for nRemaining > 0 {
		runLen, err := s.countRunAndMakeAscending(lo, hi)
		if err != nil {
			return err
		}
		if runLen < minRun {
			force := min(nRemaining, minRun)
			if err := s.binarySort(lo, lo+force, lo+runLen); err != nil {
				return err
			}
			runLen = force
		}
		s.pushRun(lo, runLen)
		if err := s.mergeCollapse(); err != nil {
			return err
		}
		lo += runLen
		nRemaining -= runLen
	}

	if err := s.mergeForceCollapse(); err != nil {
		return err
	}
	if len(s.pending) != 1 || s.pending[0].len != len(s.a) {
		return errors.AssertionFailedf("%d runs pending after final collapse", len(s.pending))
	}
	return nil
}

func (s *sortState[E]) pushRun(base, n int) {
	s.pending = append(s.pending, run{base: base, len: n})
	s.stats.runs++
}

// mergeCollapse merges adjacent runs until the stack invariants hold again:
//
//	len[n-2] > len[n-1] + len[n]
//	len[n-1] > len[n] + len[n+1]
//	len[n] > len[n+1]
//
// Checking the third run from the top as well as the second keeps the first
// invariant true for the whole stack, not just its top.
func (s *sortState[E]) mergeCollapse() error {
	for len(s.pending) > 1 {
		p := s.pending
		n := len(p) - 2
		if (n > 0 && p[n-1].len <= p[n].len+p[n+1].len) ||
			(n > 1 && p[n-2].len <= p[n-1].len+p[n].len) {
			if p[n-1].len < p[n+1].len {
				n--
			}
		} else if p[n].len > p[n+1].len {
			break
		}
		if err := s.mergeAt(n); err != nil {
			return err
		}
	}
	return nil
}

// mergeForceCollapse merges all runs on the stack until only one remains.
func (s *sortState[E]) mergeForceCollapse() error {
	for len(s.pending) > 1 {
		n := len(s.pending) - 2
		if n > 0 && s.pending[n-1].len < s.pending[n+1].len {
			n--
		}
		if err := s.mergeAt(n); err != nil {
			return err
		}
	}
	return nil
}

// mergeAt merges the runs at stack indices i and i+1. i must be the second or
// third run from the top.
func (s *sortState[E]) mergeAt(i int) error {
	base1, len1 := s.pending[i].base, s.pending[i].len
	base2, len2 := s.pending[i+1].base, s.pending[i+1].len

	s.pending[i].len = len1 + len2
	if i == len(s.pending)-3 {
		s.pending[i+1] = s.pending[i+2]
	}
	s.pending = s.pending[:len(s.pending)-1]
	s.stats.merges++

	// Elements of run 1 that are <= the first element of run 2 are already
	// in place.
	k, err := s.gallopRight(s.a[base2], s.a, base1, len1, 0)
	if err != nil {
		return err
	}
	base1 += k
	len1 -= k
	if len1 == 0 {
		return nil
	}

	// Likewise elements of run 2 that are >= the last element of run 1.
	len2, err = s.gallopLeft(s.a[base1+len1-1], s.a, base2, len2, len2-1)
	if err != nil {
		return err
	}
	if len2 == 0 {
		return nil
	}

	if len1 <= len2 {
		return s.mergeLo(base1, len1, base2, len2)
	}
	return s.mergeHi(base1, len1, base2, len2)
}

// ensureCapacity returns the merge buffer, grown to hold at least minCap
// elements. The buffer never shrinks during a sort.
func (s *sortState[E]) ensureCapacity(minCap int) []E {
	if len(s.tmp) < minCap {
		newSize := 1 << bits.Len(uint(minCap))
		if half := len(s.a) >> 1; newSize > half {
			newSize = half
		}
		if newSize < minCap {
			newSize = minCap
		}
		s.tmp = make([]E, newSize)
	}
	return s.tmp
}

func (s *sortState[E]) logStats(logger *zap.Logger, err error) {
	if ce := logger.Check(zap.DebugLevel, "sort finished"); ce != nil {
		ce.Write(
			zap.Int("length", len(s.a)),
			zap.Int("runs", s.stats.runs),
			zap.Int("merges", s.stats.merges),
			zap.Int("gallops", s.stats.gallops),
			zap.Int("comparisons", s.stats.comparisons),
			zap.Int("minGallop", s.minGallop),
			zap.Error(err),
		)
	}
}

// IsSortedFunc reports whether a is sorted in ascending order according to cmp.
func IsSortedFunc[E any](a []E, cmp CompareFunc[E]) (bool, error) {
	for i := len(a) - 1; i > 0; i-- {
		c, err := cmp(a[i], a[i-1])
		if err != nil {
			return false, err
		}
		if c < 0 {
			return false, nil
		}
	}
	return true, nil
}
