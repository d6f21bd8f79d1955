// Main command (`methdiff`) for scoring differential methylation between
// two sorted collections of CpG sites

package main

import (
	"fmt"
	"os"

	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

// runDiffCommand is the entry point for the default diff command.
// It handles flag validation and hands the two positional site files to
// runDiff
func runDiffCommand(cmd *cobra.Command, args []string) {
	// Check version flag
	if version {
		fmt.Printf("methdiff %s\n", VERSION)
		exitFunc(0)
	}

	// With no inputs, show help
	if len(args) == 0 {
		helpFunc(cmd, args)
		return
	}

	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, red("Error: two site files are required (condition A and condition B)"))
		fmt.Fprintln(os.Stderr, red("Try 'methdiff --help' for more information"))
		exitFunc(1)
	}

	// Validate format flag
	format, err := validateFormat(inFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		exitFunc(1)
	}

	if err := runDiff(args[0], args[1], outFile, format, pseudocount, allLoci, naturalOrder, verbose); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		exitFunc(1)
	}
}

// runDiff loads both site collections, validates their ordering, and
// streams matched pairs through the probability test, writing one scored
// BED-like line per emitted pair
//
// For each site of collection A that has a same-chromosome,
// same-start counterpart in collection B, the output score is the
// probability that A's true methylation level exceeds B's. Site pairs
// where either side has zero coverage are skipped unless allLoci is set
//
// Parameters:
//   - fileA: sites for condition A (drives the iteration order)
//   - fileB: sites for condition B (lookup side)
//   - outFile: output destination (use "-" for stdout)
//   - format: input format for both files (FormatAuto sniffs each file)
//   - pseudo: pseudocount added to all four counts before testing
//   - allLoci: if true, zero-coverage pairs are scored and emitted too
//   - natural: if true, chromosomes are expected in natural order
//   - verbose: if true, progress is reported on stderr
//
// Returns an error for unreadable or malformed input, unsorted
// collections (naming the offending file), or output failures
func runDiff(fileA, fileB, outFile string, format InputFormat, pseudo float64, allLoci, natural, verbose bool) error {
	if pseudo < 0 {
		return fmt.Errorf("pseudocount must be non-negative, got %v", pseudo)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, cyan("[reading sites]"))
	}

	sitesA, err := readSites(fileA, format)
	if err != nil {
		return err
	}
	if err := checkSorted(sitesA, fileA, natural); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[read=%s, %d sites]\n", fileA, len(sitesA))
	}

	sitesB, err := readSites(fileB, format)
	if err != nil {
		return err
	}
	if err := checkSorted(sitesB, fileB, natural); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[read=%s, %d sites]\n", fileB, len(sitesB))
	}

	outfh, err := xopen.Wopen(outFile)
	if err != nil {
		return fmt.Errorf("creating output file: %v", err)
	}
	defer outfh.Close()

	merger := NewMerger(sitesB, natural)

	for i, a := range sitesA {
		if verbose && (i == 0 || sitesA[i-1].Chrom != a.Chrom) {
			fmt.Fprintln(os.Stderr, cyan("[processing] "+a.Chrom))
		}

		b, ok := merger.Match(a)
		if !ok {
			continue
		}

		if (a.Total() == 0 || b.Total() == 0) && !allLoci {
			continue
		}

		// The test takes B's counts first, so the resulting tail
		// probability is that of A's methylation level being the
		// greater one
		prob := probGreater(
			float64(b.Meth)+pseudo, float64(b.Unmeth)+pseudo,
			float64(a.Meth)+pseudo, float64(a.Unmeth)+pseudo)

		result := a
		result.Name = fmt.Sprintf("CpG:%d:%d:%d:%d", a.Meth, a.Unmeth, b.Meth, b.Unmeth)
		writeSite(outfh, result, prob)
	}

	return nil
}
