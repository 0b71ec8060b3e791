package mem

// Arena is a fixed-size bump-pointer allocator over one contiguous
// region. It matches the classic append-only strategy:
//   - O(1) allocation: pure bump pointer, no heap operations
//   - Zero per-block overhead: no free lists, no headers, no maps
//   - Release is a no-op; blocks become dead space until Reset
//
// On unix platforms the region is an anonymous mmap, so arena blocks
// live outside the Go heap and Close actually returns the memory to
// the OS. Elsewhere the region is a plain heap slice.
type Arena struct {
	region []byte

	// off is the bump pointer - the region offset where the next
	// allocation will occur. Always 8-byte aligned.
	off int

	closed bool
}

// NewArena reserves a region of size bytes.
func NewArena(size int) (*Arena, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	region, err := mapRegion(size)
	if err != nil {
		return nil, err
	}
	return &Arena{region: region}, nil
}

// align8 rounds n up to the next 8-byte boundary.
func align8(n int) int {
	return (n + 7) &^ 7
}

// Allocate carves size bytes off the front of the free space.
// The returned slice has capacity clamped to its length so appends
// cannot silently overlap the next allocation.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size <= 0 {
		return nil, ErrBadSize
	}
	if a.off+size > len(a.region) {
		return nil, ErrArenaFull
	}
	b := a.region[a.off : a.off+size : a.off+size]
	// Advance the bump pointer, keeping 8-byte alignment for the next block
	a.off = align8(a.off + size)
	if a.off > len(a.region) {
		a.off = len(a.region)
	}
	return b, nil
}

// Release is a no-op. Arena blocks become dead space until Reset
// reclaims the whole region at once.
func (a *Arena) Release(b []byte) {
	// No-op - bump allocation doesn't reclaim individual blocks
}

// Reset rewinds the bump pointer, making the entire region available
// again. All previously allocated blocks are invalidated; callers must
// drop their references first.
func (a *Arena) Reset() {
	a.off = 0
}

// Free reports the bytes still available for allocation.
func (a *Arena) Free() int {
	if a.closed {
		return 0
	}
	return len(a.region) - a.off
}

// Size reports the total region size.
func (a *Arena) Size() int {
	return len(a.region)
}

// Close unmaps the region. The arena and every block carved from it
// are invalid afterwards; Allocate returns ErrClosed.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	region := a.region
	a.region = nil
	a.off = 0
	return unmapRegion(region)
}

// Compile-time interface check
var _ Allocator = (*Arena)(nil)
