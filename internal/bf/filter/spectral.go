package filter

import (
	"bf.lopezb.com/internal/bf/hash"
)

// SpectralMI is a counting filter with the minimum-increase policy from
// Cohen and Matias, "Spectral Bloom Filters": an insert raises only the
// cells already at the item's minimum. Cells above the minimum owe their
// excess to collisions with other items, and raising them further would only
// compound the over-count.
//
// The estimate is no longer a guaranteed upper bound once inserts mix with
// deletes, so this variant does not support removal.
type SpectralMI struct {
	c Counting
}

// NewSpectralMI creates a minimum-increase spectral filter.
func NewSpectralMI(h hash.Hasher, cells, width uint, partition bool) (*SpectralMI, error) {
	c, err := NewCounting(h, cells, width, partition)
	if err != nil {
		return nil, err
	}
	return &SpectralMI{c: *c}, nil
}

// Add increments only the cells at the item's current minimum.
func (f *SpectralMI) Add(data []byte) {
	f.c.incr(f.c.findMinima(f.c.findIndices(data)), 1)
}

// Lookup returns the minimum counter value over the item's cells.
func (f *SpectralMI) Lookup(data []byte) uint64 {
	return f.c.Lookup(data)
}

// Clear resets all counters to zero.
func (f *SpectralMI) Clear() {
	f.c.Clear()
}

// SpectralRM is a pair of counting filters with the recurring-minimum policy
// from Cohen and Matias, "Spectral Bloom Filters".
//
// An item's minimum is "recurring" when it is attained at two or more of its
// cells (trivially so when all its indices collapse to a single cell). A
// recurring minimum is almost certainly the item's own count, so the primary
// filter's answer stands. Items with a unique minimum are the doubtful ones;
// they get a second, dedicated estimate in a smaller secondary filter that
// only ever holds such items and therefore sees far fewer collisions.
type SpectralRM struct {
	first  Counting
	second Counting
}

// NewSpectralRM creates a recurring-minimum spectral filter from two
// independently parameterized counting filters: geometry, width, and hasher
// of the secondary are free to differ from the primary.
func NewSpectralRM(h1 hash.Hasher, cells1, width1 uint,
	h2 hash.Hasher, cells2, width2 uint, partition bool) (*SpectralRM, error) {
	first, err := NewCounting(h1, cells1, width1, partition)
	if err != nil {
		return nil, err
	}
	second, err := NewCounting(h2, cells2, width2, partition)
	if err != nil {
		return nil, err
	}
	return &SpectralRM{first: *first, second: *second}, nil
}

// Add increments the item's cells in the primary filter; if the item ends up
// with a unique minimum there, its counters in the secondary filter are
// raised as well: by one if the item is already present in the secondary,
// otherwise initialized to the primary's minimum.
func (f *SpectralRM) Add(data []byte) {
	indices1 := f.first.findIndices(data)
	f.first.incr(indices1, 1)

	minima1 := f.first.findMinima(indices1)
	if recurring(indices1, minima1) {
		return
	}

	indices2 := f.second.findIndices(data)
	min1 := f.first.countAt(minima1[0])
	min2 := f.second.findMinimum(indices2)
	if min2 > 0 {
		f.second.incr(indices2, 1)
	} else {
		f.second.incr(indices2, min1)
	}
}

// Lookup returns the primary minimum when it is recurring, and otherwise
// prefers the secondary filter's estimate, falling back to the primary
// minimum when the item is absent from the secondary.
func (f *SpectralRM) Lookup(data []byte) uint64 {
	indices1 := f.first.findIndices(data)
	minima1 := f.first.findMinima(indices1)
	min1 := f.first.countAt(minima1[0])
	if recurring(indices1, minima1) {
		return min1
	}
	min2 := f.second.findMinimum(f.second.findIndices(data))
	if min2 > 0 {
		return min2
	}
	return min1
}

// Remove decrements the item's cells in the primary filter, and, when the
// item still has a unique minimum there, also in the secondary filter
// provided the item is present in it. It returns true iff no primary cell
// underflowed.
func (f *SpectralRM) Remove(data []byte) bool {
	indices1 := f.first.findIndices(data)
	ok := f.first.decr(indices1, 1)

	minima1 := f.first.findMinima(indices1)
	if recurring(indices1, minima1) {
		return ok
	}

	indices2 := f.second.findIndices(data)
	if f.second.findMinimum(indices2) > 0 {
		f.second.decr(indices2, 1)
	}
	return ok
}

// Clear resets both filters.
func (f *SpectralRM) Clear() {
	f.first.Clear()
	f.second.Clear()
}

// recurring reports whether an item's minimum is recurring: attained at more
// than one of its cells, or trivially so when all its indices collapsed to a
// single cell.
func recurring(indices, minima []uint) bool {
	return len(minima) > 1 || len(indices) == 1
}
