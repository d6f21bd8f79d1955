// Methdiff I/O utilities for reading and writing per-site count records

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"
)

const maxLineSize = 1024 * 1024

// readSites loads one collection of per-site methylation counts from a
// plain or compressed file ("-" reads stdin). With FormatAuto the format
// is sniffed from the first data line of the file; blank lines and
// "#"/"track" header lines are skipped.
//
// Both formats produce identical Site values, so everything downstream
// of parsing is format-agnostic
func readSites(file string, format InputFormat) ([]Site, error) {
	infh, err := xopen.Ropen(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", file, err)
	}
	defer infh.Close()

	scanner := bufio.NewScanner(infh)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var sites []Site
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") {
			continue
		}

		if format == FormatAuto {
			format = sniffFormat(line)
		}

		var (
			site Site
			err  error
		)
		if format == FormatMethCounts {
			site, err = parseMethCountsSite(line)
		} else {
			site, err = parseBEDSite(line)
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %v", file, lineNo, err)
		}
		sites = append(sites, site)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %v", file, err)
	}

	return sites, nil
}

// sniffFormat guesses the input format from one data line: a strand
// symbol in the third column marks the pre-aggregated methcounts layout,
// anything else is treated as BED
func sniffFormat(line string) InputFormat {
	fields := strings.Fields(line)
	if len(fields) >= 3 && (fields[2] == "+" || fields[2] == "-") {
		return FormatMethCounts
	}
	return FormatBED
}

// parseBEDSite parses one "chrom start end name score [strand]" line,
// where name carries the read count as "CpG:<n_reads>" and score is the
// methylation fraction in [0,1]
func parseBEDSite(line string) (Site, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 || len(fields) > 6 {
		return Site{}, fmt.Errorf("expected 5 or 6 BED fields, got %d", len(fields))
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil || start < 0 {
		return Site{}, fmt.Errorf("invalid start coordinate %q", fields[1])
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil || end < start {
		return Site{}, fmt.Errorf("invalid end coordinate %q", fields[2])
	}

	name := fields[3]
	colon := strings.Index(name, ":")
	if colon < 0 {
		return Site{}, fmt.Errorf("name %q does not encode a read count", name)
	}
	reads, err := strconv.Atoi(name[colon+1:])
	if err != nil || reads < 0 {
		return Site{}, fmt.Errorf("name %q does not encode a read count", name)
	}

	level, err := parseLevel(fields[4])
	if err != nil {
		return Site{}, err
	}

	strand := "+"
	if len(fields) == 6 {
		strand, err = parseStrand(fields[5])
		if err != nil {
			return Site{}, err
		}
	}

	meth, unmeth := splitCounts(level, reads)

	return Site{
		Chrom:  fields[0],
		Start:  start,
		End:    end,
		Name:   name,
		Strand: strand,
		Meth:   meth,
		Unmeth: unmeth,
	}, nil
}

// parseMethCountsSite parses one pre-aggregated summary line:
// "chrom pos strand context level coverage"
func parseMethCountsSite(line string) (Site, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return Site{}, fmt.Errorf("expected 6 methcounts fields, got %d", len(fields))
	}

	pos, err := strconv.Atoi(fields[1])
	if err != nil || pos < 0 {
		return Site{}, fmt.Errorf("invalid position %q", fields[1])
	}

	strand, err := parseStrand(fields[2])
	if err != nil {
		return Site{}, err
	}

	level, err := parseLevel(fields[4])
	if err != nil {
		return Site{}, err
	}

	coverage, err := strconv.Atoi(fields[5])
	if err != nil || coverage < 0 {
		return Site{}, fmt.Errorf("invalid coverage %q", fields[5])
	}

	meth, unmeth := splitCounts(level, coverage)

	return Site{
		Chrom:  fields[0],
		Start:  pos,
		End:    pos + 1,
		Name:   fields[3],
		Strand: strand,
		Meth:   meth,
		Unmeth: unmeth,
	}, nil
}

func parseLevel(s string) (float64, error) {
	level, err := strconv.ParseFloat(s, 64)
	if err != nil || level < 0 || level > 1 {
		return 0, fmt.Errorf("invalid methylation fraction %q", s)
	}
	return level, nil
}

func parseStrand(s string) (string, error) {
	if s != "+" && s != "-" {
		return "", fmt.Errorf("invalid strand %q", s)
	}
	return s, nil
}

// splitCounts reconstructs integer methylated/unmethylated counts from a
// methylation fraction and a read total. The product is truncated toward
// zero (floor), not rounded; fractions that are not exact multiples of
// 1/reads lose up to one read to the unmethylated side
func splitCounts(level float64, reads int) (meth, unmeth int) {
	meth = int(math.Floor(level * float64(reads)))
	return meth, reads - meth
}

// checkSorted verifies the chromosome-major, start-minor ordering the
// merge relies on, naming the offending file in the error so the fatal
// report can point at it. Equal consecutive positions are permitted
func checkSorted(sites []Site, file string, natural bool) error {
	for i := 1; i < len(sites); i++ {
		if siteLess(sites[i], sites[i-1], natural) {
			return fmt.Errorf("sites not sorted in file %q (%s:%d follows %s:%d)",
				file, sites[i].Chrom, sites[i].Start, sites[i-1].Chrom, sites[i-1].Start)
		}
	}
	return nil
}

// writeSite emits one scored site as a single BED-like text line. The
// score keeps six significant digits; non-finite scores print as-is so
// downstream consumers can detect anomalies
func writeSite(w io.Writer, s Site, prob float64) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.6g\t%s\n", s.Chrom, s.Start, s.End, s.Name, prob, s.Strand)
}
