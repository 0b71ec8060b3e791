package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memtrack/ledger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "memtrack",
	Short: "Exercise and inspect allocation ledgers",
	Long: `memtrack drives an allocation ledger over a configurable raw memory
source and shows what the ledger sees: leak reports, failure events,
and cumulative counters. It exists to demonstrate and stress the
ledger library from the command line.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printStats dumps ledger counters, digit-grouped for big workloads.
func printStats(st ledger.Stats) {
	if quiet {
		return
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stdout, "counters:\n")
	p.Fprintf(os.Stdout, "  allocate calls:  %d (%d raw failures, %d bookkeeping failures)\n",
		st.AllocCalls, st.RawFailures, st.BookkeepingFailures)
	p.Fprintf(os.Stdout, "  release calls:   %d (%d null, %d untracked)\n",
		st.ReleaseCalls, st.NullReleases, st.UntrackedReleases)
	p.Fprintf(os.Stdout, "  live:            %d blocks, %s\n",
		st.LiveEntries, humanize.IBytes(uint64(st.LiveBytes)))
	p.Fprintf(os.Stdout, "  peak live:       %d blocks, %s\n",
		st.PeakLiveEntries, humanize.IBytes(uint64(st.PeakLiveBytes)))
	p.Fprintf(os.Stdout, "  bytes allocated: %s\n", humanize.IBytes(uint64(st.BytesAllocated)))
	p.Fprintf(os.Stdout, "  bytes released:  %s\n", humanize.IBytes(uint64(st.BytesReleased)))
}
