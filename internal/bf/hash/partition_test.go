package hash

import (
	"errors"
	"slices"
	"testing"
)

func TestIndices_Unpartitioned(t *testing.T) {
	tests := []struct {
		name    string
		digests []uint64
		cells   uint
		want    []uint
	}{
		{
			name:    "plain modulus",
			digests: []uint64{3, 14, 25},
			cells:   10,
			want:    []uint{3, 4, 5},
		},
		{
			name:    "colliding digests collapse",
			digests: []uint64{12, 22, 7},
			cells:   10,
			want:    []uint{2, 7},
		},
		{
			name:    "full collapse to one index",
			digests: []uint64{5, 15, 25},
			cells:   10,
			want:    []uint{5},
		},
		{
			name:    "output is sorted",
			digests: []uint64{9, 1, 4},
			cells:   10,
			want:    []uint{1, 4, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Indices(tt.digests, tt.cells, false)
			if err != nil {
				t.Fatalf("Indices failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndices_Partitioned(t *testing.T) {
	got, err := Indices([]uint64{5, 7, 9}, 9, true)
	if err != nil {
		t.Fatalf("Indices failed: %v", err)
	}
	if want := []uint{2, 4, 6}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIndices_PartitionDisjointness(t *testing.T) {
	// Index i must land in slice i regardless of the digests.
	const cells = 32
	const k = 4
	const parts = cells / k
	digests := [][]uint64{
		{0, 0, 0, 0},
		{7, 7, 7, 7},
		{^uint64(0), 1, 1 << 40, 12345},
	}
	for _, d := range digests {
		got, err := Indices(d, cells, true)
		if err != nil {
			t.Fatalf("Indices failed: %v", err)
		}
		if len(got) != k {
			t.Fatalf("got %d indices, want %d", len(got), k)
		}
		for i, idx := range got {
			lo, hi := uint(i)*parts, uint(i+1)*parts
			if idx < lo || idx >= hi {
				t.Errorf("digests %v: index %d = %d outside slice [%d, %d)", d, i, idx, lo, hi)
			}
		}
	}
}

func TestIndices_PartitionMismatch(t *testing.T) {
	if _, err := Indices([]uint64{1, 2, 3}, 10, true); !errors.Is(err, ErrPartition) {
		t.Errorf("got %v, want %v", err, ErrPartition)
	}
}
