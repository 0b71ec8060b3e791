package mem

import "errors"

var (
	// ErrBadSize indicates an allocation request for a zero or negative size.
	ErrBadSize = errors.New("mem: size must be positive")

	// ErrQuotaExceeded indicates the request would push outstanding bytes past the quota.
	ErrQuotaExceeded = errors.New("mem: allocation quota exceeded")

	// ErrArenaFull indicates the arena has no room left for the request.
	ErrArenaFull = errors.New("mem: arena exhausted")

	// ErrClosed indicates an operation on an arena whose region was already unmapped.
	ErrClosed = errors.New("mem: arena closed")
)
