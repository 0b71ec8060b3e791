package ledger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/memtrack/mem"
)

// Entry describes one live allocation in a Report.
type Entry struct {
	// Addr is the address of the allocation's first byte.
	Addr mem.Address `json:"addr"`

	// Size is the payload size in bytes. Always positive.
	Size int `json:"size"`

	// Seq is the allocation's sequence number. Higher means more recent.
	Seq uint64 `json:"seq"`

	// Origin is the file:line of the Allocate call site, when the
	// ledger was created with TrackOrigins.
	Origin string `json:"origin,omitempty"`
}

// Summary provides quick statistics for a Report.
type Summary struct {
	// Leaks is the number of live allocations.
	Leaks int `json:"leaks"`

	// Bytes is the payload total across live allocations.
	Bytes int64 `json:"bytes"`
}

// Report is a point-in-time snapshot of every allocation the ledger is
// still tracking. Building one never mutates the ledger.
type Report struct {
	// Entries lists live allocations, most recently allocated first.
	Entries []Entry `json:"entries,omitempty"`

	Summary
}

// Empty reports whether the snapshot found no live allocations.
func (r *Report) Empty() bool {
	return len(r.Entries) == 0
}

// FormatJSON returns the report as formatted JSON (2-space indentation).
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable leak report. An empty report says
// so explicitly instead of printing nothing.
func (r *Report) FormatText() string {
	if r.Empty() {
		return "No memory leaks detected.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Memory leaks detected: %d allocation(s), %s total\n",
		r.Leaks, humanize.IBytes(uint64(r.Bytes))))

	for _, e := range r.Entries {
		if e.Origin != "" {
			b.WriteString(fmt.Sprintf("  leaked %d bytes at %s (seq %d, %s)\n",
				e.Size, e.Addr, e.Seq, e.Origin))
		} else {
			b.WriteString(fmt.Sprintf("  leaked %d bytes at %s (seq %d)\n",
				e.Size, e.Addr, e.Seq))
		}
	}

	return b.String()
}

// FormatTextCompact returns a compact one-line-per-leak text format.
func (r *Report) FormatTextCompact() string {
	if r.Empty() {
		return "No memory leaks detected.\n"
	}

	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(fmt.Sprintf("%s %d bytes seq=%d", e.Addr, e.Size, e.Seq))
		if e.Origin != "" {
			b.WriteString(" " + e.Origin)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
