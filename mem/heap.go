package mem

// HeapAllocator sources blocks from the Go heap. It is the default raw
// allocator: Allocate is a plain make and Release is a no-op, since the
// garbage collector reclaims blocks once nothing references them.
type HeapAllocator struct{}

// NewHeap creates a HeapAllocator.
func NewHeap() *HeapAllocator {
	return &HeapAllocator{}
}

// Allocate returns a zeroed slice of exactly size bytes.
func (h *HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	return make([]byte, size), nil
}

// Release is a no-op. The garbage collector reclaims the block once the
// last reference to it is dropped.
func (h *HeapAllocator) Release(b []byte) {
	// No-op - the GC owns heap blocks
}

// Compile-time interface check
var _ Allocator = (*HeapAllocator)(nil)
