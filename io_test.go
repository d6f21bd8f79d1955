package main

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseBEDSite(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Site
		wantErr bool
	}{
		{
			name: "Six fields",
			line: "chr1\t100\t101\tCpG:8\t0.625\t+",
			want: Site{Chrom: "chr1", Start: 100, End: 101, Name: "CpG:8", Strand: "+", Meth: 5, Unmeth: 3},
		},
		{
			name: "Five fields default strand",
			line: "chr1 100 101 CpG:4 0.75",
			want: Site{Chrom: "chr1", Start: 100, End: 101, Name: "CpG:4", Strand: "+", Meth: 3, Unmeth: 1},
		},
		{
			name: "Minus strand",
			line: "chrX 5 6 CpG:2 1 -",
			want: Site{Chrom: "chrX", Start: 5, End: 6, Name: "CpG:2", Strand: "-", Meth: 2, Unmeth: 0},
		},
		{
			name: "Zero coverage",
			line: "chr1 200 201 CpG:0 0 +",
			want: Site{Chrom: "chr1", Start: 200, End: 201, Name: "CpG:0", Strand: "+", Meth: 0, Unmeth: 0},
		},
		{
			name: "Fraction truncates toward zero",
			line: "chr1 10 11 CpG:5 0.5 +",
			want: Site{Chrom: "chr1", Start: 10, End: 11, Name: "CpG:5", Strand: "+", Meth: 2, Unmeth: 3},
		},
		{
			name:    "Too few fields",
			line:    "chr1 100 101 CpG:8",
			wantErr: true,
		},
		{
			name:    "Name without read count",
			line:    "chr1 100 101 CpG 0.5 +",
			wantErr: true,
		},
		{
			name:    "Fraction above one",
			line:    "chr1 100 101 CpG:8 1.5 +",
			wantErr: true,
		},
		{
			name:    "Negative start",
			line:    "chr1 -5 101 CpG:8 0.5 +",
			wantErr: true,
		},
		{
			name:    "End before start",
			line:    "chr1 100 90 CpG:8 0.5 +",
			wantErr: true,
		},
		{
			name:    "Bad strand",
			line:    "chr1 100 101 CpG:8 0.5 *",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBEDSite(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBEDSite() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseBEDSite() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseMethCountsSite(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Site
		wantErr bool
	}{
		{
			name: "Typical line",
			line: "chr1\t100\t+\tCpG\t0.75\t8",
			want: Site{Chrom: "chr1", Start: 100, End: 101, Name: "CpG", Strand: "+", Meth: 6, Unmeth: 2},
		},
		{
			name: "Minus strand zero level",
			line: "chr2 50 - CpG 0 10",
			want: Site{Chrom: "chr2", Start: 50, End: 51, Name: "CpG", Strand: "-", Meth: 0, Unmeth: 10},
		},
		{
			name:    "Wrong field count",
			line:    "chr1 100 + CpG 0.75",
			wantErr: true,
		},
		{
			name:    "Bad strand",
			line:    "chr1 100 x CpG 0.75 8",
			wantErr: true,
		},
		{
			name:    "Negative coverage",
			line:    "chr1 100 + CpG 0.75 -2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMethCountsSite(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMethCountsSite() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseMethCountsSite() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		line string
		want InputFormat
	}{
		{"BED counts line", "chr1 100 101 CpG:8 0.625 +", FormatBED},
		{"Methcounts line", "chr1 100 + CpG 0.625 8", FormatMethCounts},
		{"Methcounts minus strand", "chr1 100 - CpG 0.625 8", FormatMethCounts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniffFormat(tt.line); got != tt.want {
				t.Errorf("sniffFormat(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitCounts(t *testing.T) {
	tests := []struct {
		level               float64
		reads, meth, unmeth int
	}{
		{0.625, 8, 5, 3},
		{0.75, 4, 3, 1},
		{0.5, 5, 2, 3}, // floor(2.5), not round
		{1, 7, 7, 0},
		{0, 9, 0, 9},
		{0.3, 0, 0, 0},
	}

	for _, tt := range tests {
		meth, unmeth := splitCounts(tt.level, tt.reads)
		if meth != tt.meth || unmeth != tt.unmeth {
			t.Errorf("splitCounts(%v, %d) = %d/%d, want %d/%d",
				tt.level, tt.reads, meth, unmeth, tt.meth, tt.unmeth)
		}
	}
}

func TestReadSites(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "sites.bed")
	content := `# comment line
track name=cpg

chr1	100	101	CpG:8	0.625	+
chr1	200	201	CpG:4	0.75	-
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	sites, err := readSites(file, FormatAuto)
	if err != nil {
		t.Fatalf("readSites() error = %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("readSites() returned %d sites, want 2", len(sites))
	}
	if sites[0].Meth != 5 || sites[0].Unmeth != 3 {
		t.Errorf("first site counts = %d/%d, want 5/3", sites[0].Meth, sites[0].Unmeth)
	}
	if sites[1].Strand != "-" {
		t.Errorf("second site strand = %q, want \"-\"", sites[1].Strand)
	}
}

func TestReadSitesMalformed(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "bad.bed")
	content := "chr1\t100\t101\tCpG:8\t0.625\t+\nchr1\tnope\t201\tCpG:4\t0.75\t+\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := readSites(file, FormatAuto)
	if err == nil {
		t.Fatal("readSites() on malformed input = nil error")
	}
	if !strings.Contains(err.Error(), "bad.bed") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name the file and line", err.Error())
	}
}

func TestCheckSorted(t *testing.T) {
	sorted := []Site{
		{Chrom: "chr1", Start: 100},
		{Chrom: "chr1", Start: 100}, // ties are allowed
		{Chrom: "chr1", Start: 250},
		{Chrom: "chr2", Start: 5},
	}
	if err := checkSorted(sorted, "a.bed", false); err != nil {
		t.Errorf("checkSorted(sorted) = %v, want nil", err)
	}

	unsorted := []Site{
		{Chrom: "chr1", Start: 300},
		{Chrom: "chr1", Start: 200},
	}
	err := checkSorted(unsorted, "b.bed", false)
	if err == nil {
		t.Fatal("checkSorted(unsorted) = nil, want error")
	}
	if !strings.Contains(err.Error(), "b.bed") {
		t.Errorf("error %q should name the offending file", err.Error())
	}

	// chr2 before chr10 is valid natural order but invalid lexicographic order
	naturalOnly := []Site{
		{Chrom: "chr2", Start: 10},
		{Chrom: "chr10", Start: 10},
	}
	if err := checkSorted(naturalOnly, "c.bed", true); err != nil {
		t.Errorf("checkSorted(natural order, natural=true) = %v, want nil", err)
	}
	if err := checkSorted(naturalOnly, "c.bed", false); err == nil {
		t.Error("checkSorted(natural order, natural=false) = nil, want error")
	}
}

func TestWriteSite(t *testing.T) {
	tests := []struct {
		name string
		site Site
		prob float64
		want string
	}{
		{
			name: "Six significant digits",
			site: Site{Chrom: "chr1", Start: 100, End: 101, Name: "CpG:5:3:3:1", Strand: "+"},
			prob: 0.3776223776223776,
			want: "chr1\t100\t101\tCpG:5:3:3:1\t0.377622\t+\n",
		},
		{
			name: "Exact half",
			site: Site{Chrom: "chr2", Start: 7, End: 8, Name: "CpG:0:0:0:0", Strand: "-"},
			prob: 0.5,
			want: "chr2\t7\t8\tCpG:0:0:0:0\t0.5\t-\n",
		},
		{
			name: "Non-finite score propagates",
			site: Site{Chrom: "chr3", Start: 1, End: 2, Name: "CpG:1:0:1:0", Strand: "+"},
			prob: math.NaN(),
			want: "chr3\t1\t2\tCpG:1:0:1:0\tNaN\t+\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			writeSite(&sb, tt.site, tt.prob)
			if sb.String() != tt.want {
				t.Errorf("writeSite() = %q, want %q", sb.String(), tt.want)
			}
		})
	}
}
