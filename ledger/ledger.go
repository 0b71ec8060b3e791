package ledger

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/joshuapare/memtrack/mem"
)

// entry is one tracked allocation. Entries serve as the address table
// values and as nodes of an intrusive doubly-linked list kept in
// most-recently-allocated order.
type entry struct {
	addr mem.Address

	// block pins the payload. While an entry is live its backing array
	// cannot be collected or recycled out from under the address table,
	// and Close can hand the block back to the raw allocator.
	block []byte

	size   int
	seq    uint64
	origin string

	prev, next *entry
}

// Ledger records every allocation handed out by a raw allocator and
// reports whatever was never released. NOT thread-safe; see the package
// documentation.
type Ledger struct {
	raw mem.Allocator
	obs Observer

	// entries maps block base address to its record.
	entries map[mem.Address]*entry

	// head is the most recently allocated live entry.
	head *entry

	// entryPool recycles entry records across allocate/release churn.
	entryPool sync.Pool

	maxTracked   int
	trackOrigins bool

	// seq numbers successful allocations, starting at 1.
	seq uint64

	stats Stats
}

// New creates a Ledger over raw. A nil obs discards events; nil opts
// means DefaultOptions.
func New(raw mem.Allocator, obs Observer, opts *Options) (*Ledger, error) {
	if raw == nil {
		return nil, ErrNilAllocator
	}
	if obs == nil {
		obs = NopObserver{}
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	hint := opts.CapacityHint
	if hint <= 0 {
		hint = 1
	}

	return &Ledger{
		raw:          raw,
		obs:          obs,
		entries:      make(map[mem.Address]*entry, hint),
		entryPool:    sync.Pool{New: func() any { return new(entry) }},
		maxTracked:   opts.MaxTracked,
		trackOrigins: opts.TrackOrigins,
	}, nil
}

// Allocate requests size bytes from the raw allocator and tracks the
// result. A non-positive size is not an allocation: it returns a nil
// block and a nil error without touching the raw allocator, matching
// malloc(0) callers that treat NULL as "nothing to do".
//
// On failure the block is always nil, the returned error wraps either
// ErrExhausted or ErrBookkeeping, and the observer sees exactly one
// AllocationFailed event. A bookkeeping failure has already rolled the
// raw allocation back by the time Allocate returns.
func (l *Ledger) Allocate(size int) ([]byte, error) {
	l.stats.AllocCalls++

	if size <= 0 {
		l.stats.ZeroRequests++
		return nil, nil
	}

	block, err := l.raw.Allocate(size)
	if err != nil {
		l.stats.RawFailures++
		failure := fmt.Errorf("%w: %w", ErrExhausted, err)
		l.obs.AllocationFailed(size, CauseRawAllocation, failure)
		return nil, failure
	}

	if l.maxTracked > 0 && len(l.entries) >= l.maxTracked {
		// Roll back so the block cannot escape untracked
		l.raw.Release(block)
		l.stats.BookkeepingFailures++
		failure := fmt.Errorf("%w: %d entries tracked", ErrBookkeeping, len(l.entries))
		l.obs.AllocationFailed(size, CauseBookkeeping, failure)
		return nil, failure
	}

	addr := mem.AddressOf(block)
	if stale, ok := l.entries[addr]; ok {
		// The raw source reused an address still on the books (arena
		// Reset, recycling allocators). The stale record describes
		// memory that no longer belongs to its owner; evict it WITHOUT
		// releasing - it is the same block we are about to hand out.
		l.evict(stale)
		l.stats.DuplicateAddresses++
	}

	e := l.entryPool.Get().(*entry)
	l.seq++
	e.addr = addr
	e.block = block
	e.size = size
	e.seq = l.seq
	if l.trackOrigins {
		e.origin = callOrigin(2)
	}
	l.pushFront(e)
	l.entries[addr] = e

	l.stats.LiveEntries = len(l.entries)
	l.stats.LiveBytes += int64(size)
	l.stats.BytesAllocated += int64(size)
	if l.stats.LiveEntries > l.stats.PeakLiveEntries {
		l.stats.PeakLiveEntries = l.stats.LiveEntries
	}
	if l.stats.LiveBytes > l.stats.PeakLiveBytes {
		l.stats.PeakLiveBytes = l.stats.LiveBytes
	}

	return block, nil
}

// Release returns a tracked block to the raw allocator and drops its
// record. A nil or empty block is a silent no-op, matching free(NULL).
//
// Releasing an address the ledger is not tracking emits exactly one
// UntrackedRelease event and returns ErrUntracked; the block is NOT
// forwarded to the raw allocator.
func (l *Ledger) Release(b []byte) error {
	l.stats.ReleaseCalls++

	if len(b) == 0 {
		l.stats.NullReleases++
		return nil
	}

	addr := mem.AddressOf(b)
	e, ok := l.entries[addr]
	if !ok {
		l.stats.UntrackedReleases++
		l.obs.UntrackedRelease(addr)
		return fmt.Errorf("%w: %s", ErrUntracked, addr)
	}

	l.unlink(e)
	delete(l.entries, addr)

	l.stats.LiveEntries = len(l.entries)
	l.stats.LiveBytes -= int64(e.size)
	l.stats.BytesReleased += int64(e.size)

	block := e.block
	l.recycle(e)
	l.raw.Release(block)

	return nil
}

// Report snapshots every live allocation, most recently allocated
// first, and hands the snapshot to the observer's LeakReport. The
// ledger itself is not mutated; calling Report any number of times
// yields the same result until the next Allocate or Release.
func (l *Ledger) Report() *Report {
	r := l.snapshot()
	l.obs.LeakReport(r)
	return r
}

// snapshot builds the Report without observer side effects.
func (l *Ledger) snapshot() *Report {
	r := &Report{}
	if len(l.entries) == 0 {
		return r
	}

	r.Entries = make([]Entry, 0, len(l.entries))
	for e := l.head; e != nil; e = e.next {
		r.Entries = append(r.Entries, Entry{
			Addr:   e.addr,
			Size:   e.size,
			Seq:    e.seq,
			Origin: e.origin,
		})
		r.Bytes += int64(e.size)
	}
	r.Leaks = len(r.Entries)

	return r
}

// Reset drops all bookkeeping without releasing payloads. The caller
// keeps ownership of every outstanding block; the ledger simply forgets
// them. Cumulative counters survive.
func (l *Ledger) Reset() {
	l.drain(false)
}

// Close releases every tracked payload through the raw allocator and
// drops the bookkeeping. The ledger remains usable afterwards, though
// callers are expected to be done with it.
func (l *Ledger) Close() {
	l.drain(true)
}

func (l *Ledger) drain(releasePayloads bool) {
	for e := l.head; e != nil; {
		next := e.next
		if releasePayloads {
			l.stats.BytesReleased += int64(e.size)
			l.raw.Release(e.block)
		}
		l.recycle(e)
		e = next
	}
	l.head = nil
	clear(l.entries)
	l.stats.LiveEntries = 0
	l.stats.LiveBytes = 0
}

// Len reports the number of currently tracked allocations.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Bytes reports the payload total across currently tracked allocations.
func (l *Ledger) Bytes() int64 {
	return l.stats.LiveBytes
}

// Tracked reports whether b's base address is currently on the books.
func (l *Ledger) Tracked(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	_, ok := l.entries[mem.AddressOf(b)]
	return ok
}

// Stats returns a copy of the ledger's counters.
func (l *Ledger) Stats() Stats {
	return l.stats
}

// TestingT is the subset of *testing.T that AssertAllReleased needs.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertAllReleased fails t with one line per live allocation and
// returns false when the ledger is still tracking anything. Unlike
// Report it emits no observer event, so it can sit in test cleanup
// without polluting observer streams.
func (l *Ledger) AssertAllReleased(t TestingT) bool {
	t.Helper()

	if len(l.entries) == 0 {
		return true
	}

	r := l.snapshot()
	for _, e := range r.Entries {
		if e.Origin != "" {
			t.Errorf("leaked %d bytes at %s (seq %d, %s)", e.Size, e.Addr, e.Seq, e.Origin)
		} else {
			t.Errorf("leaked %d bytes at %s (seq %d)", e.Size, e.Addr, e.Seq)
		}
	}

	return false
}

// evict drops a stale record whose address was reused by the raw
// source. The block is NOT released: the memory now belongs to the
// allocation that collided with it.
func (l *Ledger) evict(e *entry) {
	l.unlink(e)
	delete(l.entries, e.addr)
	l.stats.LiveBytes -= int64(e.size)
	l.recycle(e)
}

func (l *Ledger) pushFront(e *entry) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
}

func (l *Ledger) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev = nil
	e.next = nil
}

// recycle zeroes a record and returns it to the pool. Zeroing drops the
// block reference so recycled records never pin payload memory.
func (l *Ledger) recycle(e *entry) {
	*e = entry{}
	l.entryPool.Put(e)
}

// callOrigin returns "file.go:line" for the frame skip levels up.
func callOrigin(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return file + ":" + strconv.Itoa(line)
}
