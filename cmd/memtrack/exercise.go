package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memtrack/ledger"
)

var (
	exOps          int
	exSeed         int64
	exMaxBlock     int
	exLeakEvery    int
	exAllocator    string
	exArenaSize    string
	exQuota        string
	exMaxTracked   int
	exTrackOrigins bool
)

func init() {
	cmd := newExerciseCmd()
	cmd.Flags().IntVar(&exOps, "ops", 10000, "Number of random operations to run")
	cmd.Flags().Int64Var(&exSeed, "seed", 42, "RNG seed (same seed, same workload)")
	cmd.Flags().IntVar(&exMaxBlock, "max-block", 4096, "Largest single allocation in bytes")
	cmd.Flags().IntVar(&exLeakEvery, "leak-every", 0, "Deliberately leak every Nth allocation (0 = none)")
	cmd.Flags().StringVar(&exAllocator, "allocator", "heap", "Raw source: heap or arena")
	cmd.Flags().StringVar(&exArenaSize, "arena-size", "16MiB", "Arena region size (with --allocator arena)")
	cmd.Flags().StringVar(&exQuota, "quota", "", "Byte budget on the raw source (empty for none)")
	cmd.Flags().IntVar(&exMaxTracked, "max-tracked", 0, "Bookkeeping table cap (0 = unbounded)")
	cmd.Flags().BoolVar(&exTrackOrigins, "track-origins", false, "Record allocation call sites")
	rootCmd.AddCommand(cmd)
}

func newExerciseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise",
		Short: "Stress a ledger with a seeded random workload",
		Long: `The exercise command runs a reproducible random mix of allocations and
releases against a ledger, optionally leaking on purpose, then prints
the final leak report and counters. Failure events stream to stderr as
they happen.

Example:
  memtrack exercise
  memtrack exercise --ops 1000000 --seed 7
  memtrack exercise --leak-every 100 --track-origins
  memtrack exercise --allocator arena --arena-size 4MiB --quota 2MiB
  memtrack exercise --max-tracked 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise()
		},
	}
}

type exerciseResult struct {
	Ops    int            `json:"ops"`
	Seed   int64          `json:"seed"`
	Report *ledger.Report `json:"report"`
	Stats  ledger.Stats   `json:"stats"`
}

// eventsOnly forwards failure and untracked-release events but keeps
// reports quiet; the command prints reports itself.
type eventsOnly struct {
	*ledger.WriterObserver
}

func (eventsOnly) LeakReport(r *ledger.Report) {}

func runExercise() error {
	raw, cleanup, err := buildSource(exAllocator, exArenaSize, exQuota)
	if err != nil {
		return err
	}
	defer cleanup()

	// Failure events go to stderr as they happen so they interleave
	// with progress instead of corrupting --json output.
	var obs ledger.Observer
	if !quiet {
		obs = eventsOnly{ledger.NewWriterObserver(os.Stderr)}
	}

	led, err := ledger.New(raw, obs, &ledger.Options{
		MaxTracked:   exMaxTracked,
		TrackOrigins: exTrackOrigins,
	})
	if err != nil {
		return err
	}
	defer led.Close()

	rng := rand.New(rand.NewSource(exSeed))
	live := make([][]byte, 0, 1024)
	allocs := 0

	for i := 0; i < exOps; i++ {
		// Lean towards allocation so the working set grows
		if rng.Intn(100) < 55 || len(live) == 0 {
			size := 1 + rng.Intn(exMaxBlock)
			b, allocErr := led.Allocate(size)
			if allocErr != nil {
				// Already observed; keep the workload moving
				continue
			}
			allocs++
			if exLeakEvery > 0 && allocs%exLeakEvery == 0 {
				// Drop the reference without releasing
				continue
			}
			live = append(live, b)
		} else {
			idx := rng.Intn(len(live))
			b := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			if releaseErr := led.Release(b); releaseErr != nil {
				printError("release: %v\n", releaseErr)
			}
		}
	}

	// Everything still in the working set is released; only the
	// deliberately dropped blocks should remain.
	for _, b := range live {
		if releaseErr := led.Release(b); releaseErr != nil {
			printError("drain: %v\n", releaseErr)
		}
	}

	r := led.Report()

	if jsonOut {
		return printJSON(exerciseResult{
			Ops:    exOps,
			Seed:   exSeed,
			Report: r,
			Stats:  led.Stats(),
		})
	}

	printInfo("exercised %d operations (seed %d)\n\n", exOps, exSeed)
	printInfo("%s", r.FormatText())
	printInfo("\n")
	printStats(led.Stats())

	return nil
}
