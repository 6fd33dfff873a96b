package arraysort

// mergeLo merges the adjacent runs a[base1:base1+len1] and
// a[base2:base2+len2] in place and stably. It must be called only when
// len1 <= len2, the first element of run 1 is greater than the first element
// of run 2, and the last element of run 1 is greater than all of run 2.
//
// Run 1 is copied to the merge buffer and the result is written from the low
// end up. Throughout, the len1 slots starting at dest are the only ones not
// holding a live element, so on error the rest of run 1 is copied back there.
func (s *sortState[E]) mergeLo(base1, len1, base2, len2 int) (err error) {
	a := s.a
	tmp := s.ensureCapacity(len1)
	copy(tmp, a[base1:base1+len1])

	cursor1 := 0     // index into tmp
	cursor2 := base2 // index into a
	dest := base1    // index into a

	defer func() {
		if err != nil {
			copy(a[dest:dest+len1], tmp[cursor1:cursor1+len1])
		}
	}()

	// Move first element of second run and deal with degenerate cases
	a[dest] = a[cursor2]
	dest++
	cursor2++
	len2--
	if len2 == 0 {
		copy(a[dest:dest+len1], tmp[cursor1:cursor1+len1])
		return nil
	}
	if len1 == 1 {
		copy(a[dest:dest+len2], a[cursor2:cursor2+len2])
		a[dest+len2] = tmp[cursor1] // last element of run 1 to end of merge
		return nil
	}

	minGallop := s.minGallop
outer:
	for {
		count1 := 0 // number of times in a row that first run won
		count2 := 0 // number of times in a row that second run won

		// Straightforward merge until one run starts winning consistently.
		for (count1 | count2) < minGallop {
			var c int
			c, err = s.compare(a[cursor2], tmp[cursor1])
			if err != nil {
				return err
			}
			if c < 0 {
				a[dest] = a[cursor2]
				dest++
				cursor2++
				count2++
				count1 = 0
				len2--
				if len2 == 0 {
					break outer
				}
			} else {
				a[dest] = tmp[cursor1]
				dest++
				cursor1++
				count1++
				count2 = 0
				len1--
				if len1 == 1 {
					break outer
				}
			}
		}

		// Galloping may be a huge win; keep at it until neither run wins
		// long streaks any more.
		for {
			s.stats.gallops++
			count1, err = s.gallopRight(a[cursor2], tmp, cursor1, len1, 0)
			if err != nil {
				return err
			}
			if count1 != 0 {
				copy(a[dest:dest+count1], tmp[cursor1:cursor1+count1])
				dest += count1
				cursor1 += count1
				len1 -= count1
				if len1 <= 1 { // len1 == 1 || len1 == 0
					break outer
				}
			}
			a[dest] = a[cursor2]
			dest++
			cursor2++
			len2--
			if len2 == 0 {
				break outer
			}

			count2, err = s.gallopLeft(tmp[cursor1], a, cursor2, len2, 0)
			if err != nil {
				return err
			}
			if count2 != 0 {
				copy(a[dest:dest+count2], a[cursor2:cursor2+count2])
				dest += count2
				cursor2 += count2
				len2 -= count2
				if len2 == 0 {
					break outer
				}
			}
			a[dest] = tmp[cursor1]
			dest++
			cursor1++
			len1--
			if len1 == 1 {
				break outer
			}
			minGallop--
			if count1 < s.gallopThreshold && count2 < s.gallopThreshold {
				break
			}
		}
		if minGallop < 0 {
			minGallop = 0
		}
		minGallop += 2 // penalize for leaving gallop mode
	}
	s.minGallop = max(minGallop, 1)

	switch {
	case len1 == 1:
		copy(a[dest:dest+len2], a[cursor2:cursor2+len2])
		a[dest+len2] = tmp[cursor1]
	case len1 == 0:
		// Only reachable with an inconsistent comparator. The rest of run 2
		// is already in place.
	default:
		copy(a[dest:dest+len1], tmp[cursor1:cursor1+len1])
	}
	return nil
}

// mergeHi is like mergeLo, except that it should be called only if
// len1 >= len2. Run 2 is copied to the merge buffer and the result is written
// from the high end down. The len2 slots ending at dest are the free ones.
func (s *sortState[E]) mergeHi(base1, len1, base2, len2 int) (err error) {
	a := s.a
	tmp := s.ensureCapacity(len2)
	copy(tmp, a[base2:base2+len2])

	cursor1 := base1 + len1 - 1 // index into a
	cursor2 := len2 - 1         // index into tmp
	dest := base2 + len2 - 1    // index into a

	defer func() {
		if err != nil {
			copy(a[dest-len2+1:dest+1], tmp[:len2])
		}
	}()

	// Move last element of first run and deal with degenerate cases
	a[dest] = a[cursor1]
	dest--
	cursor1--
	len1--
	if len1 == 0 {
		copy(a[dest-(len2-1):dest+1], tmp[:len2])
		return nil
	}
	if len2 == 1 {
		dest -= len1
		cursor1 -= len1
		copy(a[dest+1:dest+1+len1], a[cursor1+1:cursor1+1+len1])
		a[dest] = tmp[cursor2]
		return nil
	}

	minGallop := s.minGallop
outer:
	for {
		count1 := 0
		count2 := 0

		for (count1 | count2) < minGallop {
			var c int
			c, err = s.compare(tmp[cursor2], a[cursor1])
			if err != nil {
				return err
			}
			if c < 0 {
				a[dest] = a[cursor1]
				dest--
				cursor1--
				count1++
				count2 = 0
				len1--
				if len1 == 0 {
					break outer
				}
			} else {
				a[dest] = tmp[cursor2]
				dest--
				cursor2--
				count2++
				count1 = 0
				len2--
				if len2 == 1 {
					break outer
				}
			}
		}

		for {
			s.stats.gallops++
			var k int
			k, err = s.gallopRight(tmp[cursor2], a, base1, len1, len1-1)
			if err != nil {
				return err
			}
			count1 = len1 - k
			if count1 != 0 {
				dest -= count1
				cursor1 -= count1
				len1 -= count1
				copy(a[dest+1:dest+1+count1], a[cursor1+1:cursor1+1+count1])
				if len1 == 0 {
					break outer
				}
			}
			a[dest] = tmp[cursor2]
			dest--
			cursor2--
			len2--
			if len2 == 1 {
				break outer
			}

			k, err = s.gallopLeft(a[cursor1], tmp, 0, len2, len2-1)
			if err != nil {
				return err
			}
			count2 = len2 - k
			if count2 != 0 {
				dest -= count2
				cursor2 -= count2
				len2 -= count2
				copy(a[dest+1:dest+1+count2], tmp[cursor2+1:cursor2+1+count2])
				if len2 <= 1 { // len2 == 1 || len2 == 0
					break outer
				}
			}
			a[dest] = a[cursor1]
			dest--
			cursor1--
			len1--
			if len1 == 0 {
				break outer
			}
			minGallop--
			if count1 < s.gallopThreshold && count2 < s.gallopThreshold {
				break
			}
		}
		if minGallop < 0 {
			minGallop = 0
		}
		minGallop += 2
	}
	s.minGallop = max(minGallop, 1)

	switch {
	case len2 == 1:
		dest -= len1
		cursor1 -= len1
		copy(a[dest+1:dest+1+len1], a[cursor1+1:cursor1+1+len1])
		a[dest] = tmp[cursor2] // first element of run 2 to front of merge
	case len2 == 0:
		// Only reachable with an inconsistent comparator.
	default:
		copy(a[dest-(len2-1):dest+1], tmp[:len2])
	}
	return nil
}
