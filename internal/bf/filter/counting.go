package filter

import (
	"bf.lopezb.com/internal/bf/counter"
	"bf.lopezb.com/internal/bf/hash"
)

// Counting is a Bloom filter over w-bit saturating counters. Lookup reports
// the minimum counter over the item's cells, which without removals and
// saturation never under-estimates the true insertion count.
//
// Counting also serves as the substrate of the spectral and stable variants:
// the unexported index/minima helpers below are the surface those variants
// build their policies on.
type Counting struct {
	hasher    hash.Hasher
	cells     *counter.Vector
	partition bool
}

// NewCounting creates a counting filter with `cells` counters of `width`
// bits.
func NewCounting(h hash.Hasher, cells, width uint, partition bool) (*Counting, error) {
	v, err := counter.New(cells, width)
	if err != nil {
		return nil, err
	}
	if partition && cells%uint(h.K()) != 0 {
		return nil, hash.ErrPartition
	}
	return &Counting{hasher: h, cells: v, partition: partition}, nil
}

// Add increments the item's cells by one. Saturated cells stay saturated.
func (f *Counting) Add(data []byte) {
	f.incr(f.findIndices(data), 1)
}

// Lookup returns the minimum counter value over the item's cells.
func (f *Counting) Lookup(data []byte) uint64 {
	return f.findMinimum(f.findIndices(data))
}

// Remove decrements the item's cells by one. It returns true iff no cell
// underflowed; a false return means the item (or a colliding one) was not
// fully present and some counts are now off.
func (f *Counting) Remove(data []byte) bool {
	return f.decr(f.findIndices(data), 1)
}

// Clear resets all counters to zero.
func (f *Counting) Clear() {
	f.cells.Clear()
}

// Cells returns the number of counters.
func (f *Counting) Cells() uint {
	return f.cells.Size()
}

// Width returns the number of bits per counter.
func (f *Counting) Width() uint {
	return f.cells.Width()
}

// findIndices maps an item to its distinct cell indices. The same policy is
// used on the add, lookup, and remove paths, so an item always touches the
// same cells regardless of the operation.
func (f *Counting) findIndices(data []byte) []uint {
	idx, _ := hash.Indices(f.hasher.Hash(data), f.cells.Size(), f.partition)
	return idx
}

// findMinimum returns the smallest counter value over the given cells.
func (f *Counting) findMinimum(indices []uint) uint64 {
	min := f.cells.Max()
	for _, i := range indices {
		if cnt := f.cells.Count(i); cnt < min {
			min = cnt
		}
	}
	return min
}

// findMinima returns every cell among the given ones whose counter equals
// the minimum. The spectral variants treat the size of this set as the
// trustworthiness signal: a minimum attained at two or more cells is very
// unlikely to be pure collision noise.
func (f *Counting) findMinima(indices []uint) []uint {
	min := f.cells.Max()
	var positions []uint
	for _, i := range indices {
		switch cnt := f.cells.Count(i); {
		case cnt == min:
			positions = append(positions, i)
		case cnt < min:
			min = cnt
			positions = positions[:0]
			positions = append(positions, i)
		}
	}
	return positions
}

// incr raises the given cells by `by`. It returns true iff no cell was
// already saturated.
func (f *Counting) incr(indices []uint, by uint64) bool {
	ok := true
	for _, i := range indices {
		if !f.cells.Increment(i, by) {
			ok = false
		}
	}
	return ok
}

// decr lowers the given cells by `by`. It returns true iff no cell was
// already zero.
func (f *Counting) decr(indices []uint, by uint64) bool {
	ok := true
	for _, i := range indices {
		if !f.cells.Decrement(i, by) {
			ok = false
		}
	}
	return ok
}

// countAt returns the counter value of a single cell.
func (f *Counting) countAt(cell uint) uint64 {
	return f.cells.Count(cell)
}
