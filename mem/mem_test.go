package mem

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Heap_AllocateReturnsExactSize verifies the heap source hands out
// zeroed slices of the requested length.
func Test_Heap_AllocateReturnsExactSize(t *testing.T) {
	h := NewHeap()

	b, err := h.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(b) != 64 {
		t.Fatalf("Expected len 64, got %d", len(b))
	}
	for i, v := range b {
		if v != 0 {
			t.Fatalf("Expected zeroed block, byte %d is %d", i, v)
		}
	}

	// Release must tolerate anything, including nil
	h.Release(b)
	h.Release(nil)
}

// Test_Heap_RejectsBadSizes verifies zero and negative sizes fail with ErrBadSize.
func Test_Heap_RejectsBadSizes(t *testing.T) {
	h := NewHeap()

	for _, size := range []int{0, -1, -4096} {
		b, err := h.Allocate(size)
		if !errors.Is(err, ErrBadSize) {
			t.Fatalf("Allocate(%d): expected ErrBadSize, got %v", size, err)
		}
		if b != nil {
			t.Fatalf("Allocate(%d): expected nil block on error", size)
		}
	}
}

// heapPin forces address-identity fixtures to escape to the heap, where
// blocks never move; a stack-allocated backing array changes address
// whenever the goroutine stack grows.
var heapPin []byte

// Test_Address_OfSlice verifies address extraction and the zero-address
// rule for empty slices.
func Test_Address_OfSlice(t *testing.T) {
	b := make([]byte, 16)
	heapPin = b

	addr := AddressOf(b)
	require.NotZero(t, addr)

	// The address tracks the backing array, so a re-slice of the same
	// base has the same address.
	require.Equal(t, addr, AddressOf(b[:8]))

	// Empty and nil slices map to the zero address
	require.Zero(t, AddressOf(nil))
	require.Zero(t, AddressOf(b[:0]))
	require.Zero(t, AddressOf([]byte{}))
}

// Test_Address_String verifies hex formatting.
func Test_Address_String(t *testing.T) {
	require.Equal(t, "0x0", Address(0).String())
	require.Equal(t, "0xff", Address(0xff).String())
	require.Equal(t, "0xc000104000", Address(0xc000104000).String())
}

// Test_Address_JSONRoundTrip verifies the hex-string JSON form.
func Test_Address_JSONRoundTrip(t *testing.T) {
	in := Address(0xdeadbeef)

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, `"0xdeadbeef"`, string(data))

	var out Address
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)

	// Bad inputs surface as errors, not panics
	require.Error(t, json.Unmarshal([]byte(`42`), &out))
	require.Error(t, json.Unmarshal([]byte(`"0xzz"`), &out))
}

// Test_Address_JSONError verifies decode errors mention the offending value.
func Test_Address_JSONError(t *testing.T) {
	var a Address
	err := a.UnmarshalJSON([]byte(`"not-hex"`))
	require.Error(t, err)
	if !strings.Contains(err.Error(), "not-hex") {
		t.Fatalf("error should name the bad value, got: %v", err)
	}
}
