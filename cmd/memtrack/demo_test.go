package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name           string
		allocator      string
		quota          string
		trackOrigins   bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:      "default demo leaks the second block",
			allocator: "heap",
			wantContain: []string{
				"allocated 10 bytes at 0x",
				"allocated 20 bytes at 0x",
				"Memory leaks detected: 1 allocation(s), 20 B total",
				"leaked 20 bytes at 0x",
				"No memory leaks detected.",
			},
		},
		{
			name:      "arena-backed demo",
			allocator: "arena",
			wantContain: []string{
				"Memory leaks detected: 1 allocation(s), 20 B total",
				"No memory leaks detected.",
			},
		},
		{
			name:         "track origins names this binary",
			allocator:    "heap",
			trackOrigins: true,
			wantContain: []string{
				"demo.go:",
			},
		},
		{
			name:      "tiny quota suppresses the leak",
			allocator: "heap",
			quota:     "16B",
			wantContain: []string{
				"allocated 10 bytes at 0x",
				"No memory leaks detected.",
			},
			wantNotContain: []string{
				"Memory leaks detected:",
				"allocated 20 bytes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobalFlags()
			demoAllocator = tt.allocator
			demoQuota = tt.quota
			demoTrackOrigins = tt.trackOrigins

			out, err := captureOutput(t, runDemo)
			if err != nil {
				t.Fatalf("runDemo failed: %v", err)
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n---\n%s", want, out)
				}
			}
			for _, notWant := range tt.wantNotContain {
				if strings.Contains(out, notWant) {
					t.Errorf("output should not contain %q\n---\n%s", notWant, out)
				}
			}
		})
	}
}

func TestDemoCommand_JSON(t *testing.T) {
	resetGlobalFlags()
	jsonOut = true

	out, err := captureOutput(t, runDemo)
	if err != nil {
		t.Fatalf("runDemo failed: %v", err)
	}

	var result demoResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n---\n%s", err, out)
	}

	if result.AfterPartialRelease == nil || result.AfterPartialRelease.Leaks != 1 {
		t.Errorf("expected one leak after partial release, got %+v", result.AfterPartialRelease)
	}
	if result.AfterPartialRelease.Bytes != 20 {
		t.Errorf("expected 20 leaked bytes, got %d", result.AfterPartialRelease.Bytes)
	}
	if result.AfterFullRelease == nil || result.AfterFullRelease.Leaks != 0 {
		t.Errorf("expected clean report after full release, got %+v", result.AfterFullRelease)
	}
	if result.Stats.AllocCalls != 2 {
		t.Errorf("expected 2 allocate calls, got %d", result.Stats.AllocCalls)
	}

	// Narration must not corrupt the JSON document
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("JSON mode leaked narration before the document:\n%s", out)
	}
}

func TestDemoCommand_BadFlags(t *testing.T) {
	resetGlobalFlags()
	demoAllocator = "slab"
	if _, err := captureOutput(t, runDemo); err == nil {
		t.Fatal("expected error for unknown allocator")
	}

	resetGlobalFlags()
	demoAllocator = "arena"
	demoArenaSize = "a lot"
	if _, err := captureOutput(t, runDemo); err == nil {
		t.Fatal("expected error for unparseable arena size")
	}

	resetGlobalFlags()
	demoQuota = "many bytes"
	if _, err := captureOutput(t, runDemo); err == nil {
		t.Fatal("expected error for unparseable quota")
	}
}
