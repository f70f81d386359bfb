package filter

import (
	"math"

	"bf.lopezb.com/internal/bf/hash"
)

// A2 is the A² buffering filter from Yoon, "Aging Bloom Filter with Two
// Active Buffers for Dynamic Sets": two half-size basic filters used as
// generations. Items are admitted into the active generation until it holds
// `capacity` distinct items; then the retired generation is dropped, the
// active one takes its place, and a fresh active generation starts with the
// item that crossed the threshold.
//
// A recently added item therefore survives at least one generation swap, and
// the steady-state false-positive rate stays bounded on an unbounded stream.
type A2 struct {
	active   *Basic
	retired  *Basic
	capacity uint64
	items    uint64
}

// OptimalA2K returns the number of hash functions that meets a desired
// false-positive rate for an A2 filter: floor(-log2(1 - sqrt(1-fp))).
func OptimalA2K(fp float64) int {
	return int(math.Floor(-math.Log2(1 - math.Sqrt(1-fp))))
}

// A2Capacity returns the per-generation capacity sustaining the given
// false-positive rate with `cells` total cells: floor(cells/(2k) * ln 2).
func A2Capacity(fp float64, cells uint) uint64 {
	return uint64(math.Floor(float64(cells) / float64(2*OptimalA2K(fp)) * math.Log(2)))
}

// NewA2 creates an A² filter with `cells` total bits, split evenly between
// the two generations, each hashed by k functions of the given family seeded
// from seed1 and seed2 respectively.
func NewA2(k int, cells uint, capacity uint64, seed1, seed2 uint64, family hash.Family) (*A2, error) {
	if cells == 0 {
		return nil, ErrZeroCells
	}
	if cells%2 != 0 {
		return nil, ErrOddCells
	}
	if capacity == 0 {
		return nil, ErrZeroCapacity
	}
	h1, err := hash.NewHasher(k, seed1, false, family)
	if err != nil {
		return nil, err
	}
	h2, err := hash.NewHasher(k, seed2, false, family)
	if err != nil {
		return nil, err
	}
	active, err := NewBasic(h1, cells/2, false)
	if err != nil {
		return nil, err
	}
	retired, err := NewBasic(h2, cells/2, false)
	if err != nil {
		return nil, err
	}
	return &A2{active: active, retired: retired, capacity: capacity}, nil
}

// Add inserts an item into the active generation unless it already reports
// present there; crossing the capacity triggers a generation swap with the
// item re-inserted into the fresh generation.
func (f *A2) Add(data []byte) {
	if f.active.Lookup(data) == 1 {
		return
	}
	f.active.Add(data)
	f.items++
	if f.items <= f.capacity {
		return
	}
	f.retired.Clear()
	f.active.Swap(f.retired)
	f.active.Add(data)
	f.items = 1
}

// Lookup returns 1 iff either generation contains the item.
func (f *A2) Lookup(data []byte) uint64 {
	if r := f.active.Lookup(data); r > 0 {
		return r
	}
	return f.retired.Lookup(data)
}

// Clear resets both generations and the admission count.
func (f *A2) Clear() {
	f.active.Clear()
	f.retired.Clear()
	f.items = 0
}
