package lcov

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/cover"
)

// LineHit is the execution count of one instrumented source line.
type LineHit struct {
	Line  int
	Count int
}

// Record is the line coverage of one source file in a tracefile.
type Record struct {
	SourceFile string
	Lines      []LineHit // sorted by Line, one entry per line
}

// LinesFound returns the number of instrumented lines.
func (r Record) LinesFound() int {
	return len(r.Lines)
}

// LinesHit returns the number of lines executed at least once.
func (r Record) LinesHit() int {
	n := 0
	for _, l := range r.Lines {
		if l.Count > 0 {
			n++
		}
	}
	return n
}

// FromProfiles converts Go coverage profiles to tracefile records. Every
// line spanned by a block is instrumented; a line covered by several blocks
// takes the highest count among them.
func FromProfiles(profiles []*cover.Profile) []Record {
	records := make([]Record, 0, len(profiles))
	for _, p := range profiles {
		counts := make(map[int]int)
		for _, b := range p.Blocks {
			for line := b.StartLine; line <= b.EndLine; line++ {
				if c, ok := counts[line]; !ok || b.Count > c {
					counts[line] = b.Count
				}
			}
		}

		lines := make([]LineHit, 0, len(counts))
		for line, c := range counts {
			lines = append(lines, LineHit{Line: line, Count: c})
		}
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].Line < lines[j].Line
		})

		records = append(records, Record{SourceFile: p.FileName, Lines: lines})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SourceFile < records[j].SourceFile
	})
	return records
}

// Write serializes records in tracefile format.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		fmt.Fprintf(bw, "SF:%s\n", r.SourceFile)
		for _, l := range r.Lines {
			fmt.Fprintf(bw, "DA:%d,%d\n", l.Line, l.Count)
		}
		fmt.Fprintf(bw, "LF:%d\n", r.LinesFound())
		fmt.Fprintf(bw, "LH:%d\n", r.LinesHit())
		fmt.Fprintf(bw, "%s\n", EndOfRecord)
	}
	return bw.Flush()
}

// WriteFile writes records to path, creating its directory if needed.
func WriteFile(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("lcov: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lcov: create %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("lcov: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("lcov: close %s: %w", path, err)
	}
	return nil
}
