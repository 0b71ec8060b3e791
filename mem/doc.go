// Package mem provides raw memory sources for the allocation ledger.
//
// # Overview
//
// This package defines the Allocator interface that ledger.Ledger wraps,
// plus three implementations with different backing strategies. An
// Allocator hands out byte slices and takes them back; it knows nothing
// about tracking, reporting, or leak detection - that is the ledger's job.
//
// # Allocator Implementations
//
// HeapAllocator: Go-heap backed source (RECOMMENDED DEFAULT)
//   - Allocate: make([]byte, size), never fails short of OOM
//   - Release: no-op, the garbage collector reclaims blocks
//   - Zero configuration, zero overhead
//
// QuotaAllocator: byte-budget wrapper around another Allocator
//   - Enforces a hard cap on outstanding bytes
//   - Allocate fails with ErrQuotaExceeded once the cap is hit
//   - Release refunds the block's bytes to the budget
//   - Useful for forcing allocation-failure paths in tests and demos
//
// Arena: fixed-size bump region
//   - One contiguous region reserved up front (mmap where available)
//   - O(1) bump-pointer allocation, 8-byte aligned
//   - Release is a no-op; Reset reclaims the whole region at once
//   - Allocate fails with ErrArenaFull when the region is exhausted
//
// # Addresses
//
// Address identifies an allocation by the numeric address of its first
// byte. AddressOf extracts it from any non-empty slice:
//
//	b, _ := src.Allocate(64)
//	addr := mem.AddressOf(b) // stable for the lifetime of b
//
// The zero Address is never a valid allocation address; empty slices
// map to it.
//
// # Usage Example
//
// Stacking a quota on top of the heap:
//
//	src := mem.NewQuota(mem.NewHeap(), 1<<20) // 1 MiB budget
//	b, err := src.Allocate(4096)
//	if err != nil {
//	    // quota exhausted
//	}
//	defer src.Release(b)
//
// # Thread Safety
//
// Allocator implementations are not thread-safe. Callers must
// synchronize access externally.
//
// # Related Packages
//
//   - github.com/joshuapare/memtrack/ledger: tracking wrapper over Allocator
package mem
