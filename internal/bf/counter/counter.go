// Package counter implements a fixed-width counter vector: a dense array of
// small saturating counters packed contiguously into a bit vector.
//
// Layout
// ======
//
// A vector of `cells` counters of `width` bits occupies `cells * width` bits.
// Counter c owns bit positions [c*width, c*width+width) of the underlying bit
// vector, little-endian within the counter: bit i of the counter value is bit
// c*width + i of the vector.
//
//	cells = 3, width = 2
//
//	+-------+-------+-------+
//	| c0    | c1    | c2    |
//	+---+---+---+---+---+---+
//	| 0 | 1 | 2 | 3 | 4 | 5 |   bit positions
//	+---+---+---+---+---+---+
//	 lsb msb
//
// Arithmetic
// ==========
//
// Counters saturate instead of wrapping. Incrementing a counter past its
// maximum clamps it to all-ones; decrementing past zero clamps it to zero.
// A saturated counter stays saturated, so a counting filter built on top of
// this vector degrades to an upper bound rather than corrupting neighbors.
//
// The degenerate width=1 vector behaves as a plain bit vector with correct
// one-bit saturating arithmetic: 1+1 = 1 and 0-1 = 0.
package counter

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrZeroCells is returned when constructing a vector with no cells.
	ErrZeroCells = errors.New("counter: need at least one cell")

	// ErrZeroWidth is returned when constructing a vector with zero-bit cells.
	ErrZeroWidth = errors.New("counter: need at least one bit per cell")

	// ErrWidthRange is returned when the cell width exceeds 64 bits.
	ErrWidthRange = errors.New("counter: width exceeds 64 bits")

	// ErrShapeMismatch is returned when merging vectors of different
	// geometry.
	ErrShapeMismatch = errors.New("counter: vector shapes differ")
)

// Vector is a fixed-width counter array. The zero value is not usable;
// construct with New.
type Vector struct {
	bits  *bitset.BitSet
	cells uint
	width uint
	max   uint64
}

// New creates an all-zero vector of `cells` counters of `width` bits each.
func New(cells, width uint) (*Vector, error) {
	if cells == 0 {
		return nil, ErrZeroCells
	}
	if width == 0 {
		return nil, ErrZeroWidth
	}
	if width > 64 {
		return nil, ErrWidthRange
	}
	max := ^uint64(0)
	if width < 64 {
		max = (uint64(1) << width) - 1
	}
	return &Vector{
		bits:  bitset.New(cells * width),
		cells: cells,
		width: width,
		max:   max,
	}, nil
}

// Size returns the number of cells.
func (v *Vector) Size() uint {
	return v.cells
}

// Width returns the number of bits per cell.
func (v *Vector) Width() uint {
	return v.width
}

// Max returns the largest representable counter value, 2^width - 1.
func (v *Vector) Max() uint64 {
	return v.max
}

// Increment adds `by` to the counter at `cell`, clamping the result at Max.
// It returns false iff the counter was already saturated before the call.
//
// Preconditions: cell < Size() and by > 0.
func (v *Vector) Increment(cell uint, by uint64) bool {
	//
	// DESIGN
	// ------
	//
	// The sum is computed with an explicit ripple-carry over the cell's bits
	// rather than by reading the value into a machine word and adding. Native
	// arithmetic wraps at 64 bits, which for width=64 cells would turn
	// saturation into silent corruption; the bit-level carry chain makes the
	// overflow condition explicit and the post-overflow clamp trivial.
	//
	lsb := cell * v.width

	if by >= v.max {
		// The sum can only land at or above Max: clamp directly.
		sat := true
		for i := uint(0); i < v.width; i++ {
			if !v.bits.Test(lsb + i) {
				sat = false
				v.bits.Set(lsb + i)
			}
		}
		return !sat
	}

	sat := true
	carry := false
	for i := uint(0); i < v.width; i++ {
		b1 := v.bits.Test(lsb + i)
		if !b1 {
			sat = false
		}
		b2 := by&(uint64(1)<<i) != 0
		if b2 != carry {
			v.bits.SetTo(lsb+i, !b1)
		}
		if carry {
			carry = b1 || b2
		} else {
			carry = b1 && b2
		}
	}
	if carry {
		// Overflowed past Max: clamp to all-ones.
		for i := uint(0); i < v.width; i++ {
			v.bits.Set(lsb + i)
		}
	}
	return !sat
}

// Decrement subtracts `by` from the counter at `cell`, clamping the result at
// zero. It returns false iff the counter was already zero before the call.
//
// Preconditions: cell < Size() and by > 0.
func (v *Vector) Decrement(cell uint, by uint64) bool {
	cur := v.Count(cell)
	if cur == 0 {
		return false
	}
	next := uint64(0)
	if cur > by {
		next = cur - by
	}
	v.store(cell, next)
	return true
}

// Count reconstructs the unsigned value of the counter at `cell`.
//
// Precondition: cell < Size().
func (v *Vector) Count(cell uint) uint64 {
	lsb := cell * v.width
	var n uint64
	for i := uint(0); i < v.width; i++ {
		if v.bits.Test(lsb + i) {
			n |= uint64(1) << i
		}
	}
	return n
}

// Set overwrites the counter at `cell` with `value`.
//
// Preconditions: cell < Size() and value <= Max(). Like out-of-range slice
// access, a violation panics.
func (v *Vector) Set(cell uint, value uint64) {
	if value > v.max {
		panic("counter: value exceeds cell capacity")
	}
	v.store(cell, value)
}

func (v *Vector) store(cell uint, value uint64) {
	lsb := cell * v.width
	for i := uint(0); i < v.width; i++ {
		v.bits.SetTo(lsb+i, value&(uint64(1)<<i) != 0)
	}
}

// Clear resets every counter to zero.
func (v *Vector) Clear() {
	v.bits.ClearAll()
}

// Merge adds the counters of `other` into the receiver cell by cell, clamping
// each sum at Max. Both vectors must have the same size and width.
func (v *Vector) Merge(other *Vector) error {
	if v.cells != other.cells || v.width != other.width {
		return ErrShapeMismatch
	}
	for c := uint(0); c < v.cells; c++ {
		if n := other.Count(c); n > 0 {
			v.Increment(c, n)
		}
	}
	return nil
}
