package filter

import (
	"math"

	"bf.lopezb.com/internal/bf/bits"
	"bf.lopezb.com/internal/bf/hash"
)

// Basic is the classic Bloom filter: one bit per cell, k bits per item.
type Basic struct {
	hasher    hash.Hasher
	store     bits.Store
	partition bool
}

// OptimalCells returns the number of cells that sustains the false-positive
// rate fp for the given capacity: ceil(-capacity * ln(fp) / ln(2)^2).
func OptimalCells(fp float64, capacity uint) uint {
	ln2 := math.Log(2)
	return uint(math.Ceil(-(float64(capacity) * math.Log(fp) / ln2 / ln2)))
}

// OptimalK returns the optimal number of hash functions for a filter of the
// given cell count and capacity: ceil(cells/capacity * ln(2)).
func OptimalK(cells, capacity uint) int {
	frac := float64(cells) / float64(capacity)
	return int(math.Ceil(frac * math.Log(2)))
}

// NewBasic creates a basic filter over an in-memory bit store of `cells`
// bits. With partition set, each hash function owns a disjoint slice of the
// store, which then must be divisible into K equal parts.
func NewBasic(h hash.Hasher, cells uint, partition bool) (*Basic, error) {
	if cells == 0 {
		return nil, ErrZeroCells
	}
	return NewBasicWithStore(h, bits.NewMemory(cells), partition)
}

// NewBasicWithStore creates a basic filter over a caller-supplied bit store,
// such as a redis-backed one shared between processes.
func NewBasicWithStore(h hash.Hasher, store bits.Store, partition bool) (*Basic, error) {
	if store.Len() == 0 {
		return nil, ErrZeroCells
	}
	if partition && store.Len()%uint(h.K()) != 0 {
		return nil, hash.ErrPartition
	}
	return &Basic{hasher: h, store: store, partition: partition}, nil
}

// NewBasicWithEstimates derives the filter geometry from a desired
// false-positive rate and an expected number of items, then seeds the hash
// functions from `seed`.
func NewBasicWithEstimates(fp float64, capacity uint, seed uint64, doubleHashing, partition bool) (*Basic, error) {
	if fp <= 0 || fp >= 1 {
		return nil, ErrFalsePositiveRange
	}
	if capacity == 0 {
		return nil, ErrZeroCapacity
	}
	cells := OptimalCells(fp, capacity)
	k := OptimalK(cells, capacity)
	if partition {
		// Round up so the cells divide evenly among the hash functions.
		if rem := cells % uint(k); rem != 0 {
			cells += uint(k) - rem
		}
	}
	h, err := hash.NewHasher(k, seed, doubleHashing, hash.FamilyXX)
	if err != nil {
		return nil, err
	}
	return NewBasic(h, cells, partition)
}

func (f *Basic) indices(data []byte) []uint {
	// The partition divisibility constraint was checked at construction;
	// Indices cannot fail here.
	idx, _ := hash.Indices(f.hasher.Hash(data), f.store.Len(), f.partition)
	return idx
}

// Add inserts an item by setting its k bits.
func (f *Basic) Add(data []byte) {
	for _, i := range f.indices(data) {
		f.store.Set(i)
	}
}

// Lookup returns 1 if every one of the item's bits is set, 0 otherwise.
func (f *Basic) Lookup(data []byte) uint64 {
	for _, i := range f.indices(data) {
		if !f.store.Test(i) {
			return 0
		}
	}
	return 1
}

// Remove resets the item's bits and reports whether all of them were set
// beforehand, that is, whether the item read as present. Cells are shared
// between items, so removal can introduce false negatives for other
// inserted items.
func (f *Basic) Remove(data []byte) bool {
	present := true
	for _, i := range f.indices(data) {
		if !f.store.Test(i) {
			present = false
		}
		f.store.Reset(i)
	}
	return present
}

// Clear resets all bits.
func (f *Basic) Clear() {
	f.store.ClearAll()
}

// Swap exchanges the complete state of two basic filters in constant time.
func (f *Basic) Swap(other *Basic) {
	*f, *other = *other, *f
}

// Cells returns the number of bits in the filter.
func (f *Basic) Cells() uint {
	return f.store.Len()
}

// K returns the number of hash functions.
func (f *Basic) K() int {
	return f.hasher.K()
}

// Occupancy returns the number of set bits, a cheap fill-level diagnostic.
func (f *Basic) Occupancy() uint {
	return f.store.Count()
}
