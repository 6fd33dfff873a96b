package arraysort

import (
	"slices"

	"go.uber.org/zap"

	"github.com/lanrat/arraysort/jsarray"
	"github.com/lanrat/arraysort/value"
)

// Sort sorts a materialized snapshot of values with comparefn, which must be
// undefined or callable. items must not alias a live collection's storage:
// comparefn can run arbitrary code.
func Sort(items []value.Value, comparefn value.Value, config *Config) error {
	cmp, err := NewComparator(comparefn)
	if err != nil {
		return err
	}
	return SortFunc(items, cmp.Compare, config)
}

// SortIndexedProperties reads indices 0 to length-1 of c into a new snapshot
// according to holes, then sorts the snapshot with cmp. The collection itself
// is only read; if sorting fails the error is returned and nothing is
// written anywhere.
//
// With SkipHoles only indices c reports as present are included, and an
// index that is present but reads back as a hole is included as undefined.
// With ReadThroughHoles every index is included as read.
func SortIndexedProperties(c Collection, length int, cmp *Comparator, holes HolesPolicy, config *Config) ([]value.Value, error) {
	cfg, err := mergeConfig(config)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		length = 0
	}
	if int64(length) > cfg.MaxLength {
		return nil, newAllocationError("snapshot", length, cfg.MaxLength)
	}

	items := make([]value.Value, length)
	n := 0
	if holes == ReadThroughHoles || isPackedTo(c, length) {
		for k := 0; k < length; k++ {
			items[k] = c.Get(k)
		}
		n = length
	} else {
		for k := 0; k < length; k++ {
			if !c.HasIndex(k) {
				continue
			}
			v := c.Get(k)
			if value.IsHole(v) {
				v = value.Undefined
			}
			items[n] = v
			n++
		}
	}
	// trim
	if n < length {
		items = slices.Clip(items[:n])
	}

	if err := SortFunc(items, cmp.Compare, cfg); err != nil {
		return nil, err
	}
	return items, nil
}

// isPackedTo reports whether c is known to hold a value at every index below
// length with no spare capacity, in which case the presence checks can be
// skipped.
func isPackedTo(c Collection, length int) bool {
	p, ok := c.(Packed)
	return ok && c.Length() == length && c.Capacity() == length && p.IsPacked()
}

// CopySortedListToReceiver writes sorted back into c at indices 0 to
// len(sorted)-1 and clears indices len(sorted) to length-1, so that the
// holes dropped by a SkipHoles snapshot stay holes. The reported length
// becomes the larger of c's current length and len(sorted).
//
// It reads c's current length and capacity, which may differ from when the
// snapshot was taken.
func CopySortedListToReceiver(c Collection, sorted []value.Value, length int) error {
	itemCount := len(sorted)

	newLength := max(c.Length(), itemCount)
	if newLength > c.Capacity() {
		if err := c.GrowCapacity(newLength); err != nil {
			return NewResourceError(err, "receiver", "CopySortedListToReceiver")
		}
	}

	for j, v := range sorted {
		c.Set(j, v)
	}
	// Indices past the backing storage are holes already.
	clearTo := min(length, c.Capacity())
	for j := itemCount; j < clearTo; j++ {
		c.Set(j, value.Hole)
	}
	c.SetLength(newLength)
	return nil
}

// SortArray sorts the live collection c in place the way
// Array.prototype.sort does: comparefn is validated, present elements are
// snapshotted skipping holes, the snapshot is sorted, and the result is
// written back with the holes moved to the end. If comparefn fails, c is left
// untouched and the failure is returned unchanged.
func SortArray(c Collection, comparefn value.Value, config *Config) error {
	cmp, err := NewComparator(comparefn)
	if err != nil {
		return err
	}
	cfg, err := mergeConfig(config)
	if err != nil {
		return err
	}

	length := c.Length()
	if length < 2 {
		return nil
	}
	sorted, err := SortIndexedProperties(c, length, cmp, SkipHoles, cfg)
	if err != nil {
		cfg.Logger.Debug("sort aborted",
			zap.Int("length", length),
			zap.Bool("userComparator", cmp.HasUserFunction()),
			zap.Error(err))
		return err
	}
	return CopySortedListToReceiver(c, sorted, length)
}

// ToSorted returns a new array holding the elements of c sorted the way
// Array.prototype.toSorted does. Every index is read, holes included, and
// holes come out as undefined. c is never written.
func ToSorted(c Collection, comparefn value.Value, config *Config) (*jsarray.Array, error) {
	cmp, err := NewComparator(comparefn)
	if err != nil {
		return nil, err
	}
	cfg, err := mergeConfig(config)
	if err != nil {
		return nil, err
	}

	length := c.Length()
	sorted, err := SortIndexedProperties(c, length, cmp, ReadThroughHoles, cfg)
	if err != nil {
		cfg.Logger.Debug("toSorted aborted", zap.Int("length", length), zap.Error(err))
		return nil, err
	}

	out := jsarray.New(length)
	for j, v := range sorted {
		if value.IsHole(v) {
			v = value.Undefined
		}
		out.Set(j, v)
	}
	out.SetLength(length)
	return out, nil
}
