package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/twmb/murmur3"
)

// Function is a seeded hash from a byte sequence to a 64-bit digest. A
// Function is deterministic for a given (seed, input) pair and immutable
// after construction.
type Function interface {
	Sum64(data []byte) uint64
}

// Family names a shipped hash function family.
type Family string

const (
	// FamilyXX is xxHash64, the default family.
	FamilyXX Family = "xxhash"

	// FamilyMurmur is MurmurHash3 (64-bit half of the x64 128-bit variant).
	FamilyMurmur Family = "murmur3"

	// FamilySip is SipHash-2-4.
	FamilySip Family = "siphash"
)

// NewFunction creates a seeded hash function of the given family.
func NewFunction(family Family, seed uint64) (Function, error) {
	switch family {
	case FamilyXX, "":
		var f xxFunction
		binary.LittleEndian.PutUint64(f.prefix[:], seed)
		return &f, nil
	case FamilyMurmur:
		return murmurFunction{seed: seed}, nil
	case FamilySip:
		return sipFunction{
			k0: splitmix64(seed),
			k1: splitmix64(seed + 0x9e3779b97f4a7c15),
		}, nil
	default:
		return nil, ErrUnknownFamily
	}
}

// xxFunction keys xxHash by feeding the seed's byte image into the digest
// ahead of the input. xxHash64 has no native seeding in the streaming API,
// and prefixing is the standard way to key it.
type xxFunction struct {
	prefix [8]byte
}

func (f *xxFunction) Sum64(data []byte) uint64 {
	var d xxhash.Digest
	d.Reset()
	d.Write(f.prefix[:])
	d.Write(data)
	return d.Sum64()
}

type murmurFunction struct {
	seed uint64
}

func (f murmurFunction) Sum64(data []byte) uint64 {
	return murmur3.SeedSum64(f.seed, data)
}

type sipFunction struct {
	k0, k1 uint64
}

func (f sipFunction) Sum64(data []byte) uint64 {
	return siphash.Hash(f.k0, f.k1, data)
}
