package filter

import (
	"fmt"
	"testing"

	"bf.lopezb.com/internal/bf/hash"
)

/*
 * Micro-benchmarks for the filter variants.
 *
 * Each benchmark measures one operation in isolation over pre-generated
 * items, so the numbers reflect hashing plus cell touches and nothing else.
 *
 * Run with: go test -bench=. -benchmem ./internal/bf/filter/
 */

func benchItems(count int) [][]byte {
	items := make([][]byte, count)
	for i := range items {
		items[i] = fmt.Appendf(nil, "item-%08d", i)
	}
	return items
}

func BenchmarkBasic_Add(b *testing.B) {
	h, _ := hash.NewHasher(4, 1, false, hash.FamilyXX)
	f, _ := NewBasic(h, 1<<20, false)
	items := benchItems(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(items[i%len(items)])
	}
}

func BenchmarkBasic_AddDoubleHashing(b *testing.B) {
	// Double hashing trades k-2 hash evaluations for two multiplications;
	// the gap against BenchmarkBasic_Add is the point of the construction.
	h, _ := hash.NewHasher(4, 1, true, hash.FamilyXX)
	f, _ := NewBasic(h, 1<<20, false)
	items := benchItems(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(items[i%len(items)])
	}
}

func BenchmarkBasic_Lookup(b *testing.B) {
	h, _ := hash.NewHasher(4, 1, false, hash.FamilyXX)
	f, _ := NewBasic(h, 1<<20, false)
	items := benchItems(1024)
	for _, item := range items {
		f.Add(item)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Lookup(items[i%len(items)])
	}
}

func BenchmarkCounting_Add(b *testing.B) {
	h, _ := hash.NewHasher(4, 1, false, hash.FamilyXX)
	f, _ := NewCounting(h, 1<<18, 4, false)
	items := benchItems(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(items[i%len(items)])
	}
}

func BenchmarkSpectralMI_Add(b *testing.B) {
	h, _ := hash.NewHasher(4, 1, false, hash.FamilyXX)
	f, _ := NewSpectralMI(h, 1<<18, 4, false)
	items := benchItems(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(items[i%len(items)])
	}
}

func BenchmarkStable_Add(b *testing.B) {
	h, _ := hash.NewHasher(4, 1, false, hash.FamilyXX)
	f, _ := NewStable(h, 1<<18, 2, 8, 1, false)
	items := benchItems(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Add(items[i%len(items)])
	}
}
