// Package filter implements a family of Bloom filter variants answering
// approximate membership and frequency queries under tight memory budgets.
//
// All variants share one substrate: a hash fan-out producing k cell indices
// per item (package hash) over bit or counter storage (packages bits and
// counter). On top of that substrate each variant is a small algorithm:
//
//   - Basic: one bit per cell; add sets, lookup tests all k bits.
//   - Counting: w bits per cell; add increments, lookup returns the minimum,
//     remove decrements.
//   - SpectralMI: counting with the minimum-increase policy; add raises only
//     the cells already at the minimum, reducing over-counting of heavy
//     hitters. Removal is unsupported, the estimate would lose its bound.
//   - SpectralRM: a pair of counting filters with the recurring-minimum
//     policy; items with a unique (less trustworthy) minimum get a second
//     chance in a smaller secondary filter.
//   - A2: two basic filters in generations; when the active generation
//     exceeds its capacity it retires and a fresh one takes over, bounding
//     the steady-state false-positive rate on unbounded streams.
//   - Stable: counting filter that randomly decays a fixed number of cells
//     per insert, aging out old items so the false-positive rate stays
//     time-stable.
//   - Bitwise: a series of shrinking basic filters acting as bit planes of a
//     positional counter; add is a ripple-carry increment across levels.
//
// Answers are one-sided within each variant's contract: a basic filter never
// reports an inserted item as absent, and a counting filter without removals
// never under-reports a frequency (saturation clamps it to an upper bound).
//
// Nothing here is safe for concurrent mutation. A fully constructed filter
// may be shared for lookups only, and only when it is published with the
// usual happens-before edge.
package filter

import "errors"

var (
	// ErrZeroCells is returned when constructing a filter with no cells.
	ErrZeroCells = errors.New("filter: need at least one cell")

	// ErrOddCells is returned when an A2 filter is constructed with an odd
	// cell count; each generation receives exactly half the cells.
	ErrOddCells = errors.New("filter: a2 needs an even number of cells")

	// ErrZeroCapacity is returned when a capacity-driven constructor (the
	// parametric basic filter, A2) receives a zero capacity.
	ErrZeroCapacity = errors.New("filter: need a non-zero capacity")

	// ErrEvictRange is returned when a stable filter's eviction count
	// exceeds its cell count.
	ErrEvictRange = errors.New("filter: eviction count exceeds cells")

	// ErrFalsePositiveRange is returned by the parametric constructors for a
	// false-positive rate outside (0, 1).
	ErrFalsePositiveRange = errors.New("filter: false-positive rate must be in (0, 1)")
)

// Filter is the operation set common to every variant. Add and Lookup take
// the raw byte image of an item; use hash.Wrap to serialize scalars.
//
// Lookup returns a frequency estimate: 0 or 1 for the membership-only
// variants (basic, a2), a count for the others.
type Filter interface {
	Add(data []byte)
	Lookup(data []byte) uint64
	Clear()
}

// Remover is the optional extension implemented by the variants that
// support removal: basic, counting, spectral-RM, and bitwise. The boolean
// reports a clean removal in each variant's own terms; see the concrete
// methods. The spectral-MI, A2, and stable variants deliberately omit it.
type Remover interface {
	Filter
	Remove(data []byte) bool
}

var (
	_ Remover = (*Basic)(nil)
	_ Remover = (*Counting)(nil)
	_ Remover = (*SpectralRM)(nil)
	_ Remover = (*Bitwise)(nil)
)
