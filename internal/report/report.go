// Package report defines the coverage summary produced from an LCOV file and
// its plain-text rendering.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// TopN is the number of lowest-covered files printed by Write.
const TopN = 15

// Totals holds the line counts summed over every counted record.
type Totals struct {
	TotalLines   int
	CoveredLines int
}

// Percent returns the overall line coverage percentage.
func (t Totals) Percent() float64 {
	return ComputePercent(t.CoveredLines, t.TotalLines)
}

// FileStat holds line coverage for a single source file.
type FileStat struct {
	FileName   string
	LinesFound int
	LinesHit   int
	Percent    float64
}

// NewFileStat builds a FileStat, deriving Percent from the line counts.
func NewFileStat(name string, found, hit int) FileStat {
	return FileStat{
		FileName:   name,
		LinesFound: found,
		LinesHit:   hit,
		Percent:    ComputePercent(hit, found),
	}
}

// Summary is the result of aggregating an LCOV report.
type Summary struct {
	Totals Totals
	// Files is in record order. Records without a source file path count
	// towards Totals but have no entry here.
	Files []FileStat
}

// AddTotals counts a record that has no source file path.
func (s *Summary) AddTotals(found, hit int) {
	s.Totals.TotalLines += found
	s.Totals.CoveredLines += hit
}

// AddFile counts a record and appends its FileStat.
func (s *Summary) AddFile(name string, found, hit int) {
	s.AddTotals(found, hit)
	s.Files = append(s.Files, NewFileStat(name, found, hit))
}

// Lowest returns at most n files ordered by ascending coverage. Files with
// equal coverage keep their record order. s.Files is not modified.
func (s *Summary) Lowest(n int) []FileStat {
	files := make([]FileStat, len(s.Files))
	copy(files, s.Files)
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Percent < files[j].Percent
	})
	if n >= 0 && len(files) > n {
		files = files[:n]
	}
	return files
}

// Write renders the summary as text: totals, overall percentage and the
// TopN lowest-covered files.
func (s *Summary) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Total lines: %d\n", s.Totals.TotalLines)
	fmt.Fprintf(bw, "Covered lines: %d\n", s.Totals.CoveredLines)
	fmt.Fprintf(bw, "Coverage: %.2f%%\n", s.Totals.Percent())
	fmt.Fprintf(bw, "\nLowest coverage files:\n")
	for _, f := range s.Lowest(TopN) {
		fmt.Fprintf(bw, "  %s -> %.1f%% (%d/%d)\n", f.FileName, f.Percent, f.LinesHit, f.LinesFound)
	}
	return bw.Flush()
}

// ComputePercent calculates coverage percentage, returning 0 for zero total.
func ComputePercent(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}
