package ledger

// Options configures a Ledger's bookkeeping behavior.
type Options struct {
	// MaxTracked caps how many allocations the ledger will track at
	// once. When the table is full, Allocate rolls the raw allocation
	// back and fails with ErrBookkeeping. Zero means unbounded.
	// Default: 0
	MaxTracked int

	// TrackOrigins records the file:line of each Allocate call site.
	// Origins show up in reports and make leak hunting much faster,
	// at the cost of a runtime.Caller per allocation.
	// Default: false
	TrackOrigins bool

	// CapacityHint pre-sizes the tracking table to avoid rehashing
	// during the first allocations.
	// Default: 64
	CapacityHint int
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{
		CapacityHint: 64,
	}
}
