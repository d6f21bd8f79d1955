package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shenwei356/natsort"
	"github.com/spf13/cobra"
)

const (
	VERSION = "1.0.0"

	DEFAULT_PSEUDOCOUNT = 1.0
)

// InputFormat represents the supported per-site count encodings
type InputFormat int

const (
	FormatAuto InputFormat = iota
	FormatBED
	FormatMethCounts
)

// Site is one genomic position together with its methylated and
// unmethylated read counts
type Site struct {
	Chrom  string
	Start  int
	End    int
	Name   string
	Strand string
	Meth   int
	Unmeth int
}

// Total returns the read coverage at the site
func (s Site) Total() int { return s.Meth + s.Unmeth }

// siteLess reports whether x precedes y under chromosome-major,
// start-minor ordering. Chromosome names compare lexicographically by
// default, or in natural order (chr2 before chr10) when requested
func siteLess(x, y Site, natural bool) bool {
	if x.Chrom != y.Chrom {
		if natural {
			return natsort.Compare(x.Chrom, y.Chrom, true)
		}
		return x.Chrom < y.Chrom
	}
	return x.Start < y.Start
}

// validateFormat converts the --format flag value to an InputFormat
func validateFormat(format string) (InputFormat, error) {
	switch format {
	case "auto":
		return FormatAuto, nil
	case "bed":
		return FormatBED, nil
	case "methcounts":
		return FormatMethCounts, nil
	default:
		return FormatAuto, fmt.Errorf("invalid input format: %s (supported: auto, bed, methcounts)", format)
	}
}

// Define color functions
var (
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// exitFunc is swappable so command functions can be exercised in tests
var exitFunc = os.Exit

// Root command flags
var (
	outFile      string
	pseudocount  float64
	allLoci      bool
	inFormat     string
	naturalOrder bool
	verbose      bool
	version      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "methdiff",
		Short: bold("Probability of higher CpG methylation in one condition than another"),
		Args:  cobra.MaximumNArgs(2),
		Run:   runDiffCommand,
	}

	// Set the help function
	rootCmd.SetHelpFunc(helpFunc)

	// Define flags
	flags := rootCmd.Flags()
	flags.StringVarP(&outFile, "out", "o", "-", "Output file (use '-' for stdout)")
	flags.Float64VarP(&pseudocount, "pseudo", "p", DEFAULT_PSEUDOCOUNT, "Pseudocount added to all read counts before testing")
	flags.BoolVarP(&allLoci, "all-loci", "A", false, "Score and emit zero-coverage site pairs too")
	flags.StringVarP(&inFormat, "format", "f", "auto", "Input format (auto, bed, methcounts)")
	flags.BoolVarP(&naturalOrder, "natural", "n", false, "Expect natural chromosome order (chr2 before chr10)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print progress to stderr")
	flags.BoolVar(&version, "version", false, "Show version information")

	// Register subcommands
	rootCmd.AddCommand(CheckCommand())
	rootCmd.AddCommand(ScoreCommand())

	// Custom error handling
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		fmt.Fprintln(os.Stderr, red("Try 'methdiff --help' for more information"))
		exitFunc(1)
	}
}
