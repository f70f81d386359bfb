package filter

import (
	"math/rand/v2"

	"bf.lopezb.com/internal/bf/hash"
)

// Stable is the stable Bloom filter from Deng and Rafiei, "Approximately
// Detecting Duplicates for Streaming Data using Stable Bloom Filters". Every
// insert first decays d randomly chosen cells by one, then saturates the
// item's own cells. Old items fade as their cells get decremented by later
// inserts, which keeps the false-positive rate stationary on an unbounded
// stream at the price of false negatives for stale items.
type Stable struct {
	c   Counting
	d   uint
	rng *rand.Rand
}

// NewStable creates a stable filter that decays `d` distinct cells per
// insert. The filter owns its generator, seeded from `seed`: two stable
// filters constructed with equal parameters evolve identically.
func NewStable(h hash.Hasher, cells, width, d uint, seed uint64, partition bool) (*Stable, error) {
	c, err := NewCounting(h, cells, width, partition)
	if err != nil {
		return nil, err
	}
	if d > cells {
		return nil, ErrEvictRange
	}
	return &Stable{
		c:   *c,
		d:   d,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}, nil
}

// Add decays d distinct cells chosen uniformly at random by one, then sets
// every one of the item's cells to the maximum counter value.
func (f *Stable) Add(data []byte) {
	if f.d > 0 {
		for _, cell := range f.sample() {
			f.c.cells.Decrement(cell, 1)
		}
	}
	f.c.incr(f.c.findIndices(data), f.c.cells.Max())
}

// Lookup returns the minimum counter value over the item's cells.
func (f *Stable) Lookup(data []byte) uint64 {
	return f.c.Lookup(data)
}

// Clear resets all counters to zero.
func (f *Stable) Clear() {
	f.c.Clear()
}

// sample draws d distinct cell indices uniformly at random. Rejection
// sampling terminates because d never exceeds the cell count. A draw that
// repeats an already picked cell is discarded and drawn again; the draws
// depend only on the generator state, so the sequence is reproducible for a
// given seed.
func (f *Stable) sample() []uint {
	cells := f.c.Cells()
	picked := make(map[uint]struct{}, f.d)
	out := make([]uint, 0, f.d)
	for uint(len(out)) < f.d {
		cell := uint(f.rng.Uint64N(uint64(cells)))
		if _, dup := picked[cell]; dup {
			continue
		}
		picked[cell] = struct{}{}
		out = append(out, cell)
	}
	return out
}
