package hash

import "slices"

// Indices maps k digests onto cell indices in [0, cells).
//
// Unpartitioned, each digest selects any cell via modulus and the result is
// sorted and deduplicated, so colliding digests collapse to a single index.
// Partitioned, digest i selects within the i-th slice of cells/k cells; the
// indices are distinct by construction and ascending. Either way the result
// holds at most k distinct indices and callers may mutate each listed cell
// exactly once per operation.
//
// Partitioned mode requires cells % k == 0.
func Indices(digests []uint64, cells uint, partition bool) ([]uint, error) {
	k := uint(len(digests))
	indices := make([]uint, k)
	if partition {
		if cells%k != 0 {
			return nil, ErrPartition
		}
		parts := cells / k
		for i, d := range digests {
			indices[i] = uint(i)*parts + uint(d%uint64(parts))
		}
		return indices, nil
	}
	for i, d := range digests {
		indices[i] = uint(d % uint64(cells))
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}
