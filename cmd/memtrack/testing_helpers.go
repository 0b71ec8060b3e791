package main

import (
	"bytes"
	"os"
	"testing"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// resetGlobalFlags restores flag state between tests; cobra flag vars
// are package globals and leak across table entries otherwise.
func resetGlobalFlags() {
	verbose = false
	quiet = false
	jsonOut = false

	demoAllocator = "heap"
	demoArenaSize = "64KiB"
	demoQuota = ""
	demoTrackOrigins = false

	exOps = 10000
	exSeed = 42
	exMaxBlock = 4096
	exLeakEvery = 0
	exAllocator = "heap"
	exArenaSize = "16MiB"
	exQuota = ""
	exMaxTracked = 0
	exTrackOrigins = false
}
