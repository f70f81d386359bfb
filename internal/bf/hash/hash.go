// Package hash turns arbitrary byte sequences into the cell indices a filter
// touches. It is the shared front end of every filter variant and covers four
// concerns:
//
//   - Wrapping: serializing scalar values (numbers, strings, byte slices)
//     into their raw byte image so that the rest of the pipeline only ever
//     sees bytes.
//   - Hash functions: seeded functions from bytes to a 64-bit digest. Three
//     families ship: xxHash (default), MurmurHash3, and SipHash. All three
//     accept inputs of any length.
//   - Fan-out: producing k digests per input, either with k independently
//     seeded functions or with the double-hashing construction.
//   - Partitioning: mapping k digests to k cell indices, optionally giving
//     each digest its own disjoint slice of the cell array.
//
// Double Hashing
// ==============
//
// Evaluating k independent hash functions costs k passes over the input.
// Kirsch and Mitzenmacher ("Less hashing, same performance: Building a better
// Bloom filter") showed that two evaluations suffice: with digests d1 and d2,
// the sequence
//
//	g_i = d1 + i*d2        (mod 2^64)
//
// behaves like k independent digests for filter purposes, at a provable and
// negligible penalty on the false-positive rate. The modular wrap in the
// 64-bit digest space is intended, not an overflow hazard.
//
// Partitioning
// ============
//
// Unpartitioned, each digest selects a cell anywhere in [0, cells). Two
// digests may collide on one cell; the resulting index list is therefore
// sorted and deduplicated so that counting filters touch each cell at most
// once per insert.
//
// Partitioned, the cell array is split into k equal slices of p = cells/k
// cells and digest i selects within slice i only:
//
//	index_i = i*p + (d_i mod p)
//
// Indices are distinct by construction, each hash function gets a private
// range, and spectral analysis of a single slice becomes independent of the
// other hash functions.
package hash

import "errors"

var (
	// ErrZeroK is returned when constructing a hasher with no hash
	// functions.
	ErrZeroK = errors.New("hash: need at least one hash function")

	// ErrUnknownFamily is returned for an unrecognized hash family name.
	ErrUnknownFamily = errors.New("hash: unknown hash family")

	// ErrPartition is returned when the cell count is not divisible by the
	// number of digests in partitioned mode.
	ErrPartition = errors.New("hash: cells not divisible by hash function count")

	// ErrUnsupportedType is returned by Wrap for values it cannot serialize.
	ErrUnsupportedType = errors.New("hash: unsupported value type")
)

// splitmix64 scrambles a 64-bit integer using the SplitMix64 finalizer
// (public domain). Used to derive decorrelated key material from one seed.
func splitmix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// SeedSequence is a minimal-standard linear congruential generator
// (Lehmer, multiplier 16807, modulus 2^31-1). It derives the per-function
// and per-level seeds of a filter from its single construction seed, so a
// filter's entire hash configuration is reproducible from that one value.
type SeedSequence struct {
	state uint64
}

// NewSeedSequence creates a sequence primed with the given master seed.
// A seed congruent to zero is remapped to one; the Lehmer generator has no
// zero state.
func NewSeedSequence(seed uint64) *SeedSequence {
	s := seed % 2147483647
	if s == 0 {
		s = 1
	}
	return &SeedSequence{state: s}
}

// Next returns the next seed in the sequence.
func (s *SeedSequence) Next() uint64 {
	s.state = s.state * 16807 % 2147483647
	return s.state
}
