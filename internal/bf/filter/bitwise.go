package filter

import (
	"bf.lopezb.com/internal/bf/hash"
)

// minLevelSize is the floor on a bitwise level's cell count. Higher levels
// hold exponentially fewer items, but a level too small to spread k hash
// functions would turn into pure noise.
const minLevelSize = 128

// Bitwise is a positional counter built from basic filters: level l is the
// l-th bit plane of an item's count, so the levels together represent counts
// without the fixed width a counter vector commits to. Level 0 holds `cells`
// cells and level l >= 1 holds cells/(2l) (cells/2, cells/4, cells/6, ...),
// floored at minLevelSize, so higher planes get fewer cells.
type Bitwise struct {
	k      int
	cells  uint
	seed   uint64
	family hash.Family
	levels []*Basic
}

// NewBitwise creates a bitwise filter whose first level has `cells` cells.
// Level l's hasher is seeded with the l-th value of the seed sequence started
// at `seed` (level 0 with `seed` itself). Every hasher draws its function
// seeds from that same sequence, so levels l and l+j (j < k) share k-j of
// their hash functions.
func NewBitwise(k int, cells uint, seed uint64, family hash.Family) (*Bitwise, error) {
	if cells == 0 {
		return nil, ErrZeroCells
	}
	if k <= 0 {
		return nil, hash.ErrZeroK
	}
	f := &Bitwise{k: k, cells: cells, seed: seed, family: family}
	if err := f.grow(); err != nil {
		return nil, err
	}
	return f, nil
}

// Add increments the item's positional count: every level that already
// contains the item has it removed (a carry), and the item is inserted into
// the first level that did not, growing the level list when the carry
// ripples off the top.
func (f *Bitwise) Add(data []byte) {
	l := 0
	for l < len(f.levels) && f.levels[l].Lookup(data) == 1 {
		f.levels[l].Remove(data)
		l++
	}
	if l == len(f.levels) {
		// Growth cannot fail here: the level geometry was validated when
		// level 0 was built and only shrinks toward the fixed floor.
		_ = f.grow()
	}
	f.levels[l].Add(data)
}

// Lookup reassembles the positional count: bit l of the result is level l's
// membership answer.
func (f *Bitwise) Lookup(data []byte) uint64 {
	var result uint64
	for l, level := range f.levels {
		result += level.Lookup(data) << l
	}
	return result
}

// Remove decrements the item's positional count: the lowest level that
// contains the item gives up its bit and every level below it is borrowed
// from (its bits become set). Removing an item that no level contains
// returns false and mutates nothing, so a failed removal cannot manufacture
// a count for an absent item.
func (f *Bitwise) Remove(data []byte) bool {
	borrow := -1
	for l := range f.levels {
		if f.levels[l].Lookup(data) == 1 {
			borrow = l
			break
		}
	}
	if borrow < 0 {
		return false
	}
	for l := 0; l < borrow; l++ {
		f.levels[l].Add(data)
	}
	f.levels[borrow].Remove(data)
	f.shrink()
	return true
}

// Clear drops every level and starts over with an empty level 0.
func (f *Bitwise) Clear() {
	f.levels = f.levels[:0]
	_ = f.grow()
}

// Levels returns the current number of bit planes.
func (f *Bitwise) Levels() int {
	return len(f.levels)
}

// grow appends the next level: cells/(2l) cells floored at minLevelSize,
// hashed with this level's seed from the sequence.
func (f *Bitwise) grow() error {
	l := len(f.levels)
	cells := f.cells
	if l > 0 {
		cells = f.cells / (2 * uint(l))
		if cells < minLevelSize {
			cells = minLevelSize
		}
	}

	seed := f.seed
	seq := hash.NewSeedSequence(f.seed)
	for i := 0; i < l; i++ {
		seed = seq.Next()
	}

	h, err := hash.NewHasher(f.k, seed, false, f.family)
	if err != nil {
		return err
	}
	level, err := NewBasic(h, cells, false)
	if err != nil {
		return err
	}
	f.levels = append(f.levels, level)
	return nil
}

// shrink pops empty trailing levels so the level list tracks the highest
// set bit plane, never dropping level 0.
func (f *Bitwise) shrink() {
	for len(f.levels) > 1 && f.levels[len(f.levels)-1].Occupancy() == 0 {
		f.levels = f.levels[:len(f.levels)-1]
	}
}
