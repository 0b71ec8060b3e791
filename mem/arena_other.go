//go:build !linux && !darwin && !freebsd

package mem

// mapRegion falls back to a heap slice on platforms without the unix
// mmap wrappers. The arena still bump-allocates; the region is just
// GC-managed instead of OS-managed.
func mapRegion(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// unmapRegion drops the reference and lets the GC reclaim the region.
func unmapRegion(region []byte) error {
	return nil
}
