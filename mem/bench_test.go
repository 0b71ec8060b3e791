package mem

import "testing"

func BenchmarkHeap_Allocate(b *testing.B) {
	h := NewHeap()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk, err := h.Allocate(64)
		if err != nil {
			b.Fatalf("allocate: %v", err)
		}
		h.Release(blk)
	}
}

func BenchmarkArena_Allocate(b *testing.B) {
	a, err := NewArena(1 << 20)
	if err != nil {
		b.Fatalf("failed to create arena: %v", err)
	}
	defer a.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, allocErr := a.Allocate(64); allocErr != nil {
			// Region exhausted: rewind and keep bumping
			a.Reset()
		}
	}
}
