package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func getColorizedLogo() string {
	return cyan("⦿⦾⦿")
}

// Custom help function used
// It provides nicely formatted help messages for the root command and other subcommands
func helpFunc(cmd *cobra.Command, args []string) {

	// Specialized help for subcommands
	switch cmd.Name() {
	case "check":
		fmt.Printf(`
%s

%s
  Parse site files (BED counts or pre-aggregated methcounts format) and
  verify that each is sorted by chromosome and start position — the
  ordering the differential test relies on. The first malformed or
  unsorted file stops the check with an error naming that file.

%s
  %s
  %s

%s
  %s
  %s

`,
			bold(getColorizedLogo()+" methdiff check - Validates site file ordering"),
			bold(yellow("Description:")),
			bold(yellow("Flags:")),
			cyan("-f, --format")+" <string> : Input format (auto, bed, methcounts) (default, 'auto')",
			cyan("-n, --natural")+" <bool>  : Expect natural chromosome order, chr2 before chr10 (default, false)",
			bold(yellow("Examples:")),
			cyan("methdiff check cond_a.bed cond_b.bed"),
			cyan("methdiff check --natural sample.meth.gz"),
		)
		return
	case "score":
		fmt.Printf(`
%s

%s
  Compute the probability that the true methylation level of condition A
  exceeds that of condition B from a single pair of read count
  observations, without any file input. Matches the score column a full
  run would emit for a site pair with these counts.

%s
  %s
  %s
  %s

%s
  %s

`,
			bold(getColorizedLogo()+" methdiff score - Scores one pair of count observations"),
			bold(yellow("Description:")),
			bold(yellow("Flags:")),
			cyan("-a, --counts-a")+" <string> : Condition A counts as 'methylated,unmethylated' (required)",
			cyan("-b, --counts-b")+" <string> : Condition B counts as 'methylated,unmethylated' (required)",
			cyan("-p, --pseudo")+" <float>   : Pseudocount added to all counts (default, 1)",
			bold(yellow("Examples:")),
			cyan("methdiff score --counts-a 5,2 --counts-b 3,3"),
		)
		return
	}

	// Default: root command help
	fmt.Printf(`
%s

%s
  For every CpG site present in both inputs (same chromosome and start),
  computes the probability that the true methylation level in condition A
  exceeds that in condition B, from the methylated/unmethylated read
  counts observed at the site. Both inputs must be sorted by chromosome
  and start position. Output is BED-like: positional fields from A, a
  name field "CpG:<methA>:<unmethA>:<methB>:<unmethB>" carrying the raw
  counts, and the probability as the score.

%s
  %s : per-site BED counts — "chrom start end CpG:<reads> <fraction> [strand]"
  %s : pre-aggregated summary — "chrom pos strand context <fraction> <coverage>"

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  %s
  %s

%s
  # Compare two conditions, write BED output to a file
  %s

  # Read gzipped inputs, stream results to stdout
  %s

  # Keep zero-coverage sites in the output
  %s

  # Validate inputs produced by an upstream pipeline step
  %s

`,
		bold(getColorizedLogo()+" methdiff v."+VERSION+" - Probability of differential CpG methylation between two conditions"),
		bold(yellow("Description:")),
		bold(yellow("Input formats:")),
		cyan("bed"),
		cyan("methcounts"),
		bold(yellow("Flags:")),
		cyan("-o, --out")+" <string>    : Output file (default, '-' for stdout)",
		cyan("-p, --pseudo")+" <float>  : Pseudocount added to all read counts (default, 1)",
		cyan("-A, --all-loci")+" <bool> : Score and emit zero-coverage site pairs too (default, false)",
		cyan("-f, --format")+" <string> : Input format (auto, bed, methcounts) (default, 'auto')",
		cyan("-n, --natural")+" <bool>  : Expect natural chromosome order, chr2 before chr10 (default, false)",
		cyan("-v, --verbose")+"         : Print progress to stderr",
		cyan("-h, --help")+"            : Show help message",
		cyan("--version")+"             : Show version information",
		bold(yellow("Subcommands:")),
		cyan("check")+" : Validate that site files are sorted by chromosome and position",
		cyan("score")+" : Score one pair of methylated,unmethylated count observations",
		bold(yellow("Usage examples:")),
		cyan("methdiff cond_a.bed cond_b.bed -o diff.bed"),
		cyan("methdiff cond_a.meth.gz cond_b.meth.gz > diff.bed"),
		cyan("methdiff --all-loci cond_a.bed cond_b.bed -o diff.bed"),
		cyan("methdiff check cond_a.bed cond_b.bed"),
	)
}
