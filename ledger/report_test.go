package ledger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memtrack/mem"
)

func sampleReport() *Report {
	return &Report{
		Entries: []Entry{
			{Addr: 0x2000, Size: 20, Seq: 2, Origin: "demo.go:42"},
			{Addr: 0x1000, Size: 10, Seq: 1},
		},
		Summary: Summary{Leaks: 2, Bytes: 30},
	}
}

// Test_Report_FormatText_Empty verifies the explicit no-leaks line.
func Test_Report_FormatText_Empty(t *testing.T) {
	r := &Report{}
	require.True(t, r.Empty())
	require.Equal(t, "No memory leaks detected.\n", r.FormatText())
	require.Equal(t, "No memory leaks detected.\n", r.FormatTextCompact())
}

// Test_Report_FormatText_Leaks verifies the leak listing layout.
func Test_Report_FormatText_Leaks(t *testing.T) {
	out := sampleReport().FormatText()

	require.Contains(t, out, "Memory leaks detected: 2 allocation(s), 30 B total")
	require.Contains(t, out, "leaked 20 bytes at 0x2000 (seq 2, demo.go:42)")
	require.Contains(t, out, "leaked 10 bytes at 0x1000 (seq 1)")

	// Newest entry prints first
	require.Less(t,
		strings.Index(out, "0x2000"),
		strings.Index(out, "0x1000"))
}

// Test_Report_FormatText_HumanizesTotals verifies large totals read as
// IEC sizes while per-entry sizes stay exact.
func Test_Report_FormatText_HumanizesTotals(t *testing.T) {
	r := &Report{
		Entries: []Entry{{Addr: 0x1000, Size: 3 << 20, Seq: 1}},
		Summary: Summary{Leaks: 1, Bytes: 3 << 20},
	}

	out := r.FormatText()
	require.Contains(t, out, "3.0 MiB total")
	require.Contains(t, out, "leaked 3145728 bytes at 0x1000")
}

// Test_Report_FormatTextCompact verifies the one-line-per-leak format.
func Test_Report_FormatTextCompact(t *testing.T) {
	out := sampleReport().FormatTextCompact()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "0x2000 20 bytes seq=2 demo.go:42", lines[0])
	require.Equal(t, "0x1000 10 bytes seq=1", lines[1])
}

// Test_Report_FormatJSON verifies shape and the hex address form.
func Test_Report_FormatJSON(t *testing.T) {
	out, err := sampleReport().FormatJSON()
	require.NoError(t, err)

	var decoded struct {
		Entries []struct {
			Addr   string `json:"addr"`
			Size   int    `json:"size"`
			Seq    uint64 `json:"seq"`
			Origin string `json:"origin"`
		} `json:"entries"`
		Leaks int   `json:"leaks"`
		Bytes int64 `json:"bytes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Equal(t, 2, decoded.Leaks)
	require.Equal(t, int64(30), decoded.Bytes)
	require.Len(t, decoded.Entries, 2)
	require.Equal(t, "0x2000", decoded.Entries[0].Addr)
	require.Equal(t, "demo.go:42", decoded.Entries[0].Origin)
	require.Empty(t, decoded.Entries[1].Origin)
}

// Test_Report_JSONRoundTrip verifies a report survives encode/decode.
func Test_Report_JSONRoundTrip(t *testing.T) {
	in := sampleReport()

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in.Entries, out.Entries)
	require.Equal(t, in.Summary, out.Summary)
	require.Equal(t, mem.Address(0x2000), out.Entries[0].Addr)
}

// Test_Report_EmptyJSONOmitsEntries verifies the empty report stays small.
func Test_Report_EmptyJSONOmitsEntries(t *testing.T) {
	data, err := json.Marshal(&Report{})
	require.NoError(t, err)
	require.JSONEq(t, `{"leaks":0,"bytes":0}`, string(data))
}
