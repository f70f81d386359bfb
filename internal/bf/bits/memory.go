package bits

import "github.com/bits-and-blooms/bitset"

// Memory is the in-process Store. It is a thin veneer over bitset.BitSet that
// pins the length at construction time; filters never grow their bit storage
// implicitly.
type Memory struct {
	bits *bitset.BitSet
	len  uint
}

// NewMemory creates an all-zero in-memory store of the given length.
func NewMemory(length uint) *Memory {
	return &Memory{bits: bitset.New(length), len: length}
}

// Len returns the number of bits in the store.
func (m *Memory) Len() uint {
	return m.len
}

// Test reports whether bit i is set.
func (m *Memory) Test(i uint) bool {
	return m.bits.Test(i)
}

// Set sets bit i to 1.
func (m *Memory) Set(i uint) {
	m.bits.Set(i)
}

// Reset sets bit i to 0.
func (m *Memory) Reset(i uint) {
	m.bits.Clear(i)
}

// ClearAll sets every bit to 0.
func (m *Memory) ClearAll() {
	m.bits.ClearAll()
}

// Count returns the number of set bits.
func (m *Memory) Count() uint {
	return m.bits.Count()
}

// Resize grows the store, zero-extending the new tail. The backing bitset
// extends lazily on the first write past the old length.
func (m *Memory) Resize(length uint) {
	if length > m.len {
		m.len = length
	}
}

// UnionWith ORs another in-memory store of equal length into the receiver.
func (m *Memory) UnionWith(other Store) error {
	o, ok := other.(*Memory)
	if !ok {
		return ErrBackendMismatch
	}
	if m.len != o.len {
		return ErrSizeMismatch
	}
	m.bits.InPlaceUnion(o.bits)
	return nil
}
