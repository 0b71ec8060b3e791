package ledger

// Stats holds cumulative counters for one Ledger instance.
// All counters start at zero and only ever describe this instance;
// there are no process-wide aggregates.
type Stats struct {
	// AllocCalls counts every Allocate call, including failures and
	// zero-size no-ops.
	AllocCalls int

	// ReleaseCalls counts every Release call, including null and
	// untracked ones.
	ReleaseCalls int

	// ZeroRequests counts Allocate calls with a non-positive size,
	// which return a nil block without touching the raw allocator.
	ZeroRequests int

	// NullReleases counts Release calls with a nil or empty block.
	NullReleases int

	// RawFailures counts allocations refused by the raw allocator.
	RawFailures int

	// BookkeepingFailures counts allocations rolled back because the
	// tracking table was full.
	BookkeepingFailures int

	// UntrackedReleases counts releases of addresses the ledger was
	// not tracking. These are never forwarded to the raw allocator.
	UntrackedReleases int

	// DuplicateAddresses counts raw allocations that reused an address
	// still present in the table. The stale record is evicted.
	DuplicateAddresses int

	// LiveEntries is the number of currently tracked allocations.
	LiveEntries int

	// LiveBytes is the payload total across currently tracked allocations.
	LiveBytes int64

	// PeakLiveEntries is the high-water mark of LiveEntries.
	PeakLiveEntries int

	// PeakLiveBytes is the high-water mark of LiveBytes.
	PeakLiveBytes int64

	// BytesAllocated is the cumulative payload total of successful allocations.
	BytesAllocated int64

	// BytesReleased is the cumulative payload total of tracked releases.
	BytesReleased int64
}
