package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/memtrack/ledger"
	"github.com/joshuapare/memtrack/mem"
)

var (
	demoAllocator    string
	demoArenaSize    string
	demoQuota        string
	demoTrackOrigins bool
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVar(&demoAllocator, "allocator", "heap", "Raw source: heap or arena")
	cmd.Flags().StringVar(&demoArenaSize, "arena-size", "64KiB", "Arena region size (with --allocator arena)")
	cmd.Flags().StringVar(&demoQuota, "quota", "", "Byte budget on the raw source, e.g. 1MiB (empty for none)")
	cmd.Flags().BoolVar(&demoTrackOrigins, "track-origins", false, "Record allocation call sites")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk the classic leak-detection scenario",
		Long: `The demo command allocates two blocks, releases only the first, and
takes a report: the second block shows up as a leak. It then releases
the leak and reports again to show the ledger coming clean.

Example:
  memtrack demo
  memtrack demo --track-origins
  memtrack demo --allocator arena --arena-size 1MiB
  memtrack demo --quota 16B
  memtrack demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

type demoResult struct {
	AfterPartialRelease *ledger.Report `json:"after_partial_release"`
	AfterFullRelease    *ledger.Report `json:"after_full_release"`
	Stats               ledger.Stats   `json:"stats"`
}

func runDemo() error {
	raw, cleanup, err := buildSource(demoAllocator, demoArenaSize, demoQuota)
	if err != nil {
		return err
	}
	defer cleanup()

	led, err := ledger.New(raw, nil, &ledger.Options{TrackOrigins: demoTrackOrigins})
	if err != nil {
		return err
	}
	defer led.Close()

	narrate := func(format string, args ...interface{}) {
		if !jsonOut {
			printInfo(format, args...)
		}
	}

	first, err := led.Allocate(10)
	if err != nil {
		printError("allocating first block: %v\n", err)
	} else {
		narrate("allocated %d bytes at %s\n", len(first), mem.AddressOf(first))
	}

	second, err := led.Allocate(20)
	if err != nil {
		printError("allocating second block: %v\n", err)
	} else {
		narrate("allocated %d bytes at %s\n", len(second), mem.AddressOf(second))
	}

	if err := led.Release(first); err != nil {
		printError("releasing first block: %v\n", err)
	} else {
		narrate("released the first block, leaked the second\n")
	}

	afterPartial := led.Report()
	narrate("\n%s\n", afterPartial.FormatText())

	if err := led.Release(second); err != nil {
		printError("releasing second block: %v\n", err)
	} else {
		narrate("released the second block\n")
	}

	afterFull := led.Report()
	narrate("\n%s", afterFull.FormatText())

	if jsonOut {
		return printJSON(demoResult{
			AfterPartialRelease: afterPartial,
			AfterFullRelease:    afterFull,
			Stats:               led.Stats(),
		})
	}

	if verbose {
		printInfo("\n")
		printStats(led.Stats())
	}

	return nil
}
