package ledger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/memtrack/mem"
)

// FailureCause classifies why an allocation failed.
type FailureCause uint8

const (
	// CauseRawAllocation means the raw allocator refused the request.
	CauseRawAllocation FailureCause = iota + 1

	// CauseBookkeeping means the tracking table was full and the raw
	// allocation was rolled back.
	CauseBookkeeping
)

// String returns the cause's wire-friendly name.
func (c FailureCause) String() string {
	switch c {
	case CauseRawAllocation:
		return "raw-allocation"
	case CauseBookkeeping:
		return "bookkeeping"
	default:
		return "unknown"
	}
}

// Observer receives ledger events as they happen. Implementations must
// not call back into the Ledger that emitted the event.
//
// Every failure produces exactly one event: one AllocationFailed per
// failed Allocate, one UntrackedRelease per unknown Release, one
// LeakReport per Report call.
type Observer interface {
	// AllocationFailed fires when Allocate returns a nil block for a
	// positive size. err wraps ErrExhausted or ErrBookkeeping.
	AllocationFailed(size int, cause FailureCause, err error)

	// UntrackedRelease fires when Release is handed an address the
	// ledger is not tracking.
	UntrackedRelease(addr mem.Address)

	// LeakReport fires on every Report call with the snapshot that
	// Report returns.
	LeakReport(r *Report)
}

// NopObserver discards all events. It is the default when New is given
// a nil observer.
type NopObserver struct{}

func (NopObserver) AllocationFailed(size int, cause FailureCause, err error) {}
func (NopObserver) UntrackedRelease(addr mem.Address)                        {}
func (NopObserver) LeakReport(r *Report)                                     {}

// WriterObserver writes human-readable event lines to an io.Writer.
// Write errors are ignored; diagnostics must never break the program
// they are diagnosing.
type WriterObserver struct {
	W io.Writer
}

// NewWriterObserver creates a WriterObserver over w.
func NewWriterObserver(w io.Writer) *WriterObserver {
	return &WriterObserver{W: w}
}

func (o *WriterObserver) AllocationFailed(size int, cause FailureCause, err error) {
	switch cause {
	case CauseBookkeeping:
		fmt.Fprintf(o.W, "allocation tracking failed for %d bytes: %v\n", size, err)
	default:
		fmt.Fprintf(o.W, "allocation of %d bytes failed: %v\n", size, err)
	}
}

func (o *WriterObserver) UntrackedRelease(addr mem.Address) {
	fmt.Fprintf(o.W, "attempted to release untracked address %s\n", addr)
}

func (o *WriterObserver) LeakReport(r *Report) {
	io.WriteString(o.W, r.FormatText())
}

// SlogObserver emits structured records via log/slog. Failures log at
// Error, untracked releases at Warn, and reports at Info or Warn
// depending on whether leaks were found.
type SlogObserver struct {
	log *slog.Logger
}

// NewSlogObserver creates a SlogObserver. A nil logger uses slog.Default().
func NewSlogObserver(log *slog.Logger) *SlogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &SlogObserver{log: log}
}

func (o *SlogObserver) AllocationFailed(size int, cause FailureCause, err error) {
	o.log.Error("allocation failed",
		"size", size,
		"cause", cause.String(),
		"err", err)
}

func (o *SlogObserver) UntrackedRelease(addr mem.Address) {
	o.log.Warn("untracked release", "addr", addr.String())
}

func (o *SlogObserver) LeakReport(r *Report) {
	if r.Empty() {
		o.log.Info("no memory leaks detected")
		return
	}
	o.log.Warn("memory leaks detected",
		"leaks", r.Leaks,
		"bytes", r.Bytes)
}

// Compile-time interface checks
var (
	_ Observer = NopObserver{}
	_ Observer = (*WriterObserver)(nil)
	_ Observer = (*SlogObserver)(nil)
)
