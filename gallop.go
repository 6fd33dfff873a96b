package arraysort

// gallopLeft locates the position at which to insert key into the sorted
// range a[base:base+n]; if the range contains elements equal to key, it
// returns the index of the leftmost one. The search starts at hint
// (0 <= hint < n), probing at offsets 1, 3, 7, 15, ... before a binary search
// of the final bracket.
//
// The result k satisfies a[base+k-1] < key <= a[base+k]: key belongs at
// base+k, and the first k elements of the range are less than key.
func (s *sortState[E]) gallopLeft(key E, a []E, base, n, hint int) (int, error) {
	lastOfs, ofs := 0, 1

	c, err := s.compare(key, a[base+hint])
	if err != nil {
		return 0, err
	}
	if c > 0 {
		// Gallop right until a[base+hint+lastOfs] < key <= a[base+hint+ofs]
		maxOfs := n - hint
		for ofs < maxOfs {
			c, err = s.compare(key, a[base+hint+ofs])
			if err != nil {
				return 0, err
			}
			if c <= 0 {
				break
			}
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs += hint
		ofs += hint
	} else {
		// key <= a[base+hint]: gallop left until a[base+hint-ofs] < key <= a[base+hint-lastOfs]
		maxOfs := hint + 1
		for ofs < maxOfs {
			c, err = s.compare(key, a[base+hint-ofs])
			if err != nil {
				return 0, err
			}
			if c > 0 {
				break
			}
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 {
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs, ofs = hint-ofs, hint-lastOfs
	}

	// Now a[base+lastOfs] < key <= a[base+ofs]; binary search in between.
	lastOfs++
	for lastOfs < ofs {
		m := lastOfs + ((ofs - lastOfs) >> 1)
		c, err = s.compare(key, a[base+m])
		if err != nil {
			return 0, err
		}
		if c > 0 {
			lastOfs = m + 1 // a[base+m] < key
		} else {
			ofs = m // key <= a[base+m]
		}
	}
	return ofs, nil
}

// gallopRight is like gallopLeft, except that if the range contains elements
// equal to key, it returns the index after the rightmost one.
//
// The result k satisfies a[base+k-1] <= key < a[base+k].
func (s *sortState[E]) gallopRight(key E, a []E, base, n, hint int) (int, error) {
	lastOfs, ofs := 0, 1

	c, err := s.compare(key, a[base+hint])
	if err != nil {
		return 0, err
	}
	if c < 0 {
		// Gallop left until a[base+hint-ofs] <= key < a[base+hint-lastOfs]
		maxOfs := hint + 1
		for ofs < maxOfs {
			c, err = s.compare(key, a[base+hint-ofs])
			if err != nil {
				return 0, err
			}
			if c >= 0 {
				break
			}
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs, ofs = hint-ofs, hint-lastOfs
	} else {
		// a[base+hint] <= key: gallop right until a[base+hint+lastOfs] <= key < a[base+hint+ofs]
		maxOfs := n - hint
		for ofs < maxOfs {
			c, err = s.compare(key, a[base+hint+ofs])
			if err != nil {
				return 0, err
			}
			if c < 0 {
				break
			}
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 {
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs += hint
		ofs += hint
	}

	// Now a[base+lastOfs] <= key < a[base+ofs]; binary search in between.
	lastOfs++
	for lastOfs < ofs {
		m := lastOfs + ((ofs - lastOfs) >> 1)
		c, err = s.compare(key, a[base+m])
		if err != nil {
			return 0, err
		}
		if c < 0 {
			ofs = m // key < a[base+m]
		} else {
			lastOfs = m + 1 // a[base+m] <= key
		}
	}
	return ofs, nil
}
