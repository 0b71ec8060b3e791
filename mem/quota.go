package mem

// QuotaAllocator wraps another Allocator and enforces a hard cap on
// outstanding bytes. Once live allocations reach the limit, further
// Allocate calls fail with ErrQuotaExceeded until Release refunds
// enough budget.
//
// The quota counts payload bytes only; it knows nothing about the
// inner allocator's own overhead.
type QuotaAllocator struct {
	inner Allocator
	limit int64
	used  int64
}

// NewQuota wraps inner with a byte budget. A non-positive limit means
// every allocation fails, which is occasionally useful for exercising
// failure paths.
func NewQuota(inner Allocator, limit int64) *QuotaAllocator {
	return &QuotaAllocator{inner: inner, limit: limit}
}

// Allocate charges size bytes against the budget and delegates to the
// inner allocator. A failed inner allocation leaves the budget unchanged.
func (q *QuotaAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	if q.used+int64(size) > q.limit {
		return nil, ErrQuotaExceeded
	}
	b, err := q.inner.Allocate(size)
	if err != nil {
		return nil, err
	}
	q.used += int64(size)
	return b, nil
}

// Release refunds the block's bytes to the budget and passes the block
// through to the inner allocator.
func (q *QuotaAllocator) Release(b []byte) {
	if len(b) == 0 {
		return
	}
	q.used -= int64(len(b))
	if q.used < 0 {
		// Released more than was allocated through this wrapper.
		// Clamp rather than let the budget go negative.
		q.used = 0
	}
	q.inner.Release(b)
}

// Used reports the bytes currently charged against the budget.
func (q *QuotaAllocator) Used() int64 {
	return q.used
}

// Limit reports the configured byte budget.
func (q *QuotaAllocator) Limit() int64 {
	return q.limit
}

// Compile-time interface check
var _ Allocator = (*QuotaAllocator)(nil)
