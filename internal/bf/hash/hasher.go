package hash

// Hasher produces k digests per input. Implementations are immutable after
// construction and deterministic for a given input.
type Hasher interface {
	// Hash returns the K digests of data. The returned slice is freshly
	// allocated on every call.
	Hash(data []byte) []uint64

	// K returns the number of digests per input.
	K() int
}

// NewHasher builds a Hasher with k digests whose hash functions are seeded
// from `seed` through a SeedSequence. With doubleHashing set, only two
// functions are constructed and the remaining digests are derived as linear
// combinations; otherwise k independently seeded functions are evaluated.
func NewHasher(k int, seed uint64, doubleHashing bool, family Family) (Hasher, error) {
	if k <= 0 {
		return nil, ErrZeroK
	}
	seq := NewSeedSequence(seed)
	if doubleHashing {
		h1, err := NewFunction(family, seq.Next())
		if err != nil {
			return nil, err
		}
		h2, err := NewFunction(family, seq.Next())
		if err != nil {
			return nil, err
		}
		return &doubleHasher{k: k, h1: h1, h2: h2}, nil
	}
	fns := make([]Function, k)
	for i := range fns {
		f, err := NewFunction(family, seq.Next())
		if err != nil {
			return nil, err
		}
		fns[i] = f
	}
	return &independentHasher{fns: fns}, nil
}

// independentHasher evaluates k distinctly seeded hash functions.
type independentHasher struct {
	fns []Function
}

func (h *independentHasher) Hash(data []byte) []uint64 {
	digests := make([]uint64, len(h.fns))
	for i, f := range h.fns {
		digests[i] = f.Sum64(data)
	}
	return digests
}

func (h *independentHasher) K() int {
	return len(h.fns)
}

// doubleHasher evaluates two hash functions and expands them to k digests
// via g_i = d1 + i*d2 in the 64-bit digest space.
type doubleHasher struct {
	k      int
	h1, h2 Function
}

func (h *doubleHasher) Hash(data []byte) []uint64 {
	d1 := h.h1.Sum64(data)
	d2 := h.h2.Sum64(data)
	digests := make([]uint64, h.k)
	for i := range digests {
		digests[i] = d1 + uint64(i)*d2
	}
	return digests
}

func (h *doubleHasher) K() int {
	return h.k
}
