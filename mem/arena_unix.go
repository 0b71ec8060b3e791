//go:build linux || darwin || freebsd

package mem

import "golang.org/x/sys/unix"

// mapRegion reserves an anonymous private mapping so arena blocks live
// outside the Go heap.
func mapRegion(size int) ([]byte, error) {
	return unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
}

// unmapRegion returns the mapping to the OS.
func unmapRegion(region []byte) error {
	if region == nil {
		return nil
	}
	return unix.Munmap(region)
}
