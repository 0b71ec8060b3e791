// Package ledger provides allocation tracking and leak detection over a
// raw memory source.
//
// # Overview
//
// A Ledger wraps a mem.Allocator and records every block it hands out.
// Releasing a block through the ledger removes its record; whatever is
// still recorded when you ask for a Report is, by definition, a leak.
// The ledger never owns allocation policy - sizing, alignment, and
// backing strategy belong to the raw allocator underneath.
//
// # Usage Example
//
// Basic allocate/release/report cycle:
//
//	led, err := ledger.New(mem.NewHeap(), nil, nil)
//	if err != nil {
//	    return err
//	}
//	defer led.Close()
//
//	a, _ := led.Allocate(10)
//	b, _ := led.Allocate(20)
//
//	led.Release(a)
//
//	r := led.Report() // b is still live: one leak, 20 bytes
//	fmt.Print(r.FormatText())
//
// # Failure Handling
//
// Allocate reports failures through two channels at once: the returned
// error for the caller, and the Observer for whoever is watching. There
// are exactly two failure causes:
//
//   - CauseRawAllocation: the raw allocator refused the request
//   - CauseBookkeeping: the tracking table is full (Options.MaxTracked)
//
// A bookkeeping failure rolls the raw allocation back before returning,
// so no block ever escapes untracked. Failed allocations return a nil
// block; no operation panics.
//
// # Release Semantics
//
// Release(nil) and Release of an empty slice are silent no-ops, matching
// free(NULL). Releasing an address the ledger is not tracking emits
// exactly one UntrackedRelease observer event and returns ErrUntracked
// WITHOUT forwarding to the raw allocator - passing unknown pointers
// through to the source is how double-free corruption starts.
//
// # Reports
//
// Report is a pure read: it never mutates ledger state, so calling it
// between operations is free of side effects. Entries are ordered
// most-recently-allocated first. An empty report means no leaks, and
// FormatText says so explicitly rather than printing nothing.
//
// # Teardown
//
// Reset drops all bookkeeping but leaves payloads alive (the caller
// still owns them). Close releases every tracked payload through the
// raw allocator, then drops the bookkeeping. The two are independent:
// pick the one that matches who owns the blocks.
//
// # Observers
//
// The Observer interface decouples event reporting from event handling.
// Three implementations ship with the package:
//
//   - NopObserver: discard everything (the default)
//   - WriterObserver: human-readable lines to an io.Writer
//   - SlogObserver: structured records via log/slog
//
// The metrics package adds a Prometheus-backed observer.
//
// # Thread Safety
//
// Ledger instances are not thread-safe. Callers must synchronize access
// externally or use one ledger per goroutine. There is no global state:
// every Ledger is an explicit instance, and independent instances never
// interfere.
//
// # Related Packages
//
//   - github.com/joshuapare/memtrack/mem: raw allocator implementations
//   - github.com/joshuapare/memtrack/metrics: Prometheus observer and collector
package ledger
