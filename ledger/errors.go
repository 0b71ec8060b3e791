package ledger

import "errors"

var (
	// ErrExhausted indicates the raw allocator could not satisfy the request.
	ErrExhausted = errors.New("ledger: raw allocation failed")

	// ErrBookkeeping indicates the tracking table is full and the raw
	// allocation was rolled back.
	ErrBookkeeping = errors.New("ledger: bookkeeping storage exhausted")

	// ErrUntracked indicates a release of an address the ledger is not tracking.
	ErrUntracked = errors.New("ledger: address not tracked")

	// ErrNilAllocator indicates New was called without a raw allocator.
	ErrNilAllocator = errors.New("ledger: raw allocator is nil")
)
