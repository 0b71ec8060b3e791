package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// BenchmarkResult represents one parsed `go test -bench` output line.
type BenchmarkResult struct {
	Name        string
	Package     string
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// benchLine matches lines like:
//
//	BenchmarkAllocateRelease-8   5000000   250.0 ns/op   144 B/op   2 allocs/op
var benchLine = regexp.MustCompile(
	`^Benchmark(\S+?)(?:-\d+)?\s+(\d+)\s+([\d.]+) ns/op(?:\s+(\d+) B/op)?(?:\s+(\d+) allocs/op)?`,
)

// pkgLine matches the "pkg:" header go test prints per package.
var pkgLine = regexp.MustCompile(`^pkg:\s+(\S+)`)

func main() {
	flag.Parse()

	var scanner *bufio.Scanner
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open %s: %v\n", *inputFile, err)
			os.Exit(1)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results, err := parseBenchmarks(scanner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no benchmark lines found in input")
		os.Exit(1)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark result(s)\n", len(results))
	}

	md := formatMarkdown(results)

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", *outputFile)
		}
		return
	}

	fmt.Print(md)
}

func parseBenchmarks(scanner *bufio.Scanner) ([]BenchmarkResult, error) {
	var results []BenchmarkResult
	pkg := ""

	for scanner.Scan() {
		line := scanner.Text()

		if m := pkgLine.FindStringSubmatch(line); m != nil {
			pkg = m[1]
			continue
		}

		m := benchLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		iters, _ := strconv.Atoi(m[2])
		nsPerOp, _ := strconv.ParseFloat(m[3], 64)

		r := BenchmarkResult{
			Name:       m[1],
			Package:    pkg,
			Iterations: iters,
			NsPerOp:    nsPerOp,
		}
		if m[4] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(m[4], 10, 64)
		}
		if m[5] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(m[5], 10, 64)
		}

		results = append(results, r)
	}

	return results, scanner.Err()
}

func formatMarkdown(results []BenchmarkResult) string {
	// Group by package, keep benchmark order stable within each
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Package != results[j].Package {
			return results[i].Package < results[j].Package
		}
		return results[i].Name < results[j].Name
	})

	var b strings.Builder
	b.WriteString("# Benchmark Report\n")

	lastPkg := "\x00"
	for _, r := range results {
		if r.Package != lastPkg {
			lastPkg = r.Package
			title := r.Package
			if title == "" {
				title = "(unknown package)"
			}
			b.WriteString(fmt.Sprintf("\n## %s\n\n", title))
			b.WriteString("| Benchmark | Iterations | ns/op | B/op | allocs/op |\n")
			b.WriteString("|-----------|-----------:|------:|-----:|----------:|\n")
		}

		b.WriteString(fmt.Sprintf("| %s | %d | %.1f | %d | %d |\n",
			r.Name, r.Iterations, r.NsPerOp, r.BytesPerOp, r.AllocsPerOp))
	}

	return b.String()
}
