// Subcommand (`methdiff score`) for scoring a single pair of count
// observations given directly on the command line

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ScoreCommand creates the `score` subcommand which runs the
// differential test on one quadruple of counts without any file input.
//
// It applies the same pseudocount handling and argument wiring as the
// main command, so the printed value matches the score column a full run
// would produce for a site pair with these counts. Handy for spot checks
// and debugging pipeline output
func ScoreCommand() *cobra.Command {
	var (
		countsA string
		countsB string
		pseudo  float64
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one pair of methylated,unmethylated count observations",
		Long: `Compute the probability that the true methylation level of condition A exceeds
that of condition B, from a single pair of "methylated,unmethylated" read count
observations. Equivalent to the score a full run would emit for a matched site
pair carrying these counts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			methA, unmethA, err := parseCountPair(countsA)
			if err != nil {
				return fmt.Errorf("--counts-a: %v", err)
			}
			methB, unmethB, err := parseCountPair(countsB)
			if err != nil {
				return fmt.Errorf("--counts-b: %v", err)
			}
			if pseudo < 0 {
				return fmt.Errorf("pseudocount must be non-negative, got %v", pseudo)
			}

			prob := probGreater(
				float64(methB)+pseudo, float64(unmethB)+pseudo,
				float64(methA)+pseudo, float64(unmethA)+pseudo)

			fmt.Printf("%.6g\n", prob)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&countsA, "counts-a", "a", "", "Condition A counts as 'methylated,unmethylated' (required)")
	flags.StringVarP(&countsB, "counts-b", "b", "", "Condition B counts as 'methylated,unmethylated' (required)")
	flags.Float64VarP(&pseudo, "pseudo", "p", DEFAULT_PSEUDOCOUNT, "Pseudocount added to all read counts before testing")
	cmd.MarkFlagRequired("counts-a")
	cmd.MarkFlagRequired("counts-b")

	return cmd
}

// parseCountPair parses a "methylated,unmethylated" flag value into two
// non-negative integers
func parseCountPair(s string) (meth, unmeth int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 'methylated,unmethylated', got %q", s)
	}
	meth, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || meth < 0 {
		return 0, 0, fmt.Errorf("invalid methylated count %q", parts[0])
	}
	unmeth, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || unmeth < 0 {
		return 0, 0, fmt.Errorf("invalid unmethylated count %q", parts[1])
	}
	return meth, unmeth, nil
}
