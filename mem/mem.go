package mem

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// Address is the numeric address of an allocation's first byte.
// It identifies a live block in ledger bookkeeping and in reports.
// The zero Address is reserved: no valid allocation ever maps to it.
type Address uintptr

// AddressOf returns the Address of the first byte of b.
// Empty and nil slices return the zero Address.
func AddressOf(b []byte) Address {
	if len(b) == 0 {
		return 0
	}
	return Address(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// String formats the address in the conventional hex pointer form, e.g. "0xc000104000".
func (a Address) String() string {
	return "0x" + strconv.FormatUint(uint64(a), 16)
}

// MarshalJSON encodes the address as its hex string form.
// Raw uintptr values are meaningless across runs; the hex form at least
// reads like a pointer in dumps and diffs.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an address from the hex string form produced by MarshalJSON.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("mem: address must be a hex string: %w", err)
	}
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return fmt.Errorf("mem: bad address %q: %w", s, err)
	}
	*a = Address(v)
	return nil
}

// Allocator is a raw memory source. Implementations hand out byte
// slices and take them back; they perform no tracking of their own.
//
// Allocate returns a slice of exactly size bytes, or an error when the
// source cannot satisfy the request. Implementations must not return a
// non-nil slice together with a non-nil error.
//
// Release returns a previously allocated block to the source. Sources
// that cannot reclaim individual blocks (heap, arena) treat it as a
// no-op. Release must tolerate nil and empty slices.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Release(b []byte)
}
