package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/memtrack/mem"
)

// buildSource assembles the raw allocator stack from the shared flags:
// a heap or arena base, optionally wrapped in a byte quota. The returned
// cleanup releases arena regions and must be called when done.
func buildSource(kind, arenaSize, quota string) (mem.Allocator, func() error, error) {
	var (
		src     mem.Allocator
		cleanup = func() error { return nil }
	)

	switch kind {
	case "heap":
		src = mem.NewHeap()

	case "arena":
		size, err := humanize.ParseBytes(arenaSize)
		if err != nil {
			return nil, nil, fmt.Errorf("bad --arena-size %q: %w", arenaSize, err)
		}
		arena, err := mem.NewArena(int(size))
		if err != nil {
			return nil, nil, err
		}
		src = arena
		cleanup = arena.Close

	default:
		return nil, nil, fmt.Errorf("unknown allocator %q (want heap or arena)", kind)
	}

	if quota != "" {
		limit, err := humanize.ParseBytes(quota)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("bad --quota %q: %w", quota, err)
		}
		src = mem.NewQuota(src, int64(limit))
	}

	return src, cleanup, nil
}
