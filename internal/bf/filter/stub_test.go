package filter

import "fmt"

// stubHasher returns canned digests per item, giving tests full control over
// which cells an item maps to. Policy behavior (minima, recurring minima,
// carries) becomes exactly reproducible instead of depending on hash layout.
type stubHasher struct {
	k       int
	digests map[string][]uint64
}

func (s *stubHasher) Hash(data []byte) []uint64 {
	d, ok := s.digests[string(data)]
	if !ok {
		panic(fmt.Sprintf("stubHasher: no digests for %q", data))
	}
	return d
}

func (s *stubHasher) K() int {
	return s.k
}
