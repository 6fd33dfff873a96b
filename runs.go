package arraysort

// countRunAndMakeAscending returns the length of the run beginning at lo in
// a[lo:hi], reversing it if it is descending.
//
// A run is the longest ascending sequence with a[lo] <= a[lo+1] <= ... or the
// longest descending sequence with a[lo] > a[lo+1] > .... Descending runs are
// strictly descending so that reversing them cannot reorder equal elements.
func (s *sortState[E]) countRunAndMakeAscending(lo, hi int) (int, error) {
	a := s.a
	runHi := lo + 1
	if runHi == hi {
		return 1, nil
	}

	c, err := s.compare(a[runHi], a[lo])
	if err != nil {
		return 0, err
	}
	runHi++
	if c < 0 {
		for runHi < hi {
			c, err = s.compare(a[runHi], a[runHi-1])
			if err != nil {
				return 0, err
			}
			if c >= 0 {
				break
			}
			runHi++
		}
		reverseRange(a, lo, runHi)
	} else {
		for runHi < hi {
			c, err = s.compare(a[runHi], a[runHi-1])
			if err != nil {
				return 0, err
			}
			if c < 0 {
				break
			}
			runHi++
		}
	}
	return runHi - lo, nil
}

// reverseRange reverses a[lo:hi].
func reverseRange[E any](a []E, lo, hi int) {
	i, j := lo, hi-1
	for i < j {
		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
}

// binarySort sorts a[lo:hi] using binary insertion sort, given that
// a[lo:start] is already sorted. Equal elements are inserted after their
// peers, which keeps the sort stable.
func (s *sortState[E]) binarySort(lo, hi, start int) error {
	a := s.a
	if start == lo {
		start++
	}
	for ; start < hi; start++ {
		pivot := a[start]

		left, right := lo, start
		for left < right {
			mid := int(uint(left+right) >> 1)
			c, err := s.compare(pivot, a[mid])
			if err != nil {
				return err
			}
			if c < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}

		copy(a[left+1:start+1], a[left:start])
		a[left] = pivot
	}
	return nil
}

// minRunLength returns the minimum acceptable run length for an array of
// length n. The result k satisfies minMerge/2 <= k <= minMerge, and n/k is
// close to, but strictly less than, an exact power of 2.
func minRunLength(n, minMerge int) int {
	r := 0 // becomes 1 if any 1 bits are shifted off
	for n >= minMerge {
		r |= n & 1
		n >>= 1
	}
	return n + r
}
