// Package lcov reads LCOV tracefiles and aggregates their line coverage.
package lcov

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yag13s/lcovsummary/internal/report"
)

// DefaultPath is where the summary looks for the tracefile.
const DefaultPath = "coverage/lcov.info"

// EndOfRecord terminates every record in a tracefile.
const EndOfRecord = "end_of_record"

var (
	// ErrMissingInput is returned when the tracefile does not exist.
	ErrMissingInput = errors.New("lcov file not found")

	// ErrNoCoverageData is returned when the records with both LF and LH
	// add up to zero lines found.
	ErrNoCoverageData = errors.New("no coverage data found in lcov file")
)

var (
	sourceFileRe = regexp.MustCompile(`SF:(.+)`)
	linesFoundRe = regexp.MustCompile(`LF:(\d+)`)
	linesHitRe   = regexp.MustCompile(`LH:(\d+)`)
)

// MissingInputError reports an absent tracefile together with the step
// that produces it.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s not found. Run `flutter test --coverage` first.", e.Path)
}

// Is makes errors.Is(err, ErrMissingInput) hold.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// Block is the data extracted from one record. Fields whose marker is
// absent are left zero and their Has flag false.
type Block struct {
	SourceFile    string
	LinesFound    int
	LinesHit      int
	HasSourceFile bool
	HasLinesFound bool
	HasLinesHit   bool
}

// Counted reports whether the block contributes to the totals.
func (b Block) Counted() bool {
	return b.HasLinesFound && b.HasLinesHit
}

// ParseBlock extracts SF, LF and LH from a single record. Each marker is
// searched independently and the first occurrence wins.
func ParseBlock(chunk string) Block {
	var b Block
	if m := sourceFileRe.FindStringSubmatch(chunk); m != nil {
		b.SourceFile = strings.TrimSpace(m[1])
		b.HasSourceFile = true
	}
	b.LinesFound, b.HasLinesFound = findInt(linesFoundRe, chunk)
	b.LinesHit, b.HasLinesHit = findInt(linesHitRe, chunk)
	return b
}

// findInt returns the integer captured by re. A digit run too large for int
// is treated as absent.
func findInt(re *regexp.Regexp, chunk string) (int, bool) {
	m := re.FindStringSubmatch(chunk)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Blocks splits a tracefile into records, dropping blank fragments such as
// the one after the final end_of_record.
func Blocks(text string) []Block {
	var blocks []Block
	for _, chunk := range strings.Split(text, EndOfRecord) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		blocks = append(blocks, ParseBlock(chunk))
	}
	return blocks
}

// Parse aggregates the line coverage of a tracefile.
//
// Records with both LF and LH add to the totals. Only those that also name
// a source file get a per-file entry, so a record without SF still moves
// the overall percentage.
func Parse(text string) (*report.Summary, error) {
	s := &report.Summary{}
	for _, b := range Blocks(text) {
		if !b.Counted() {
			continue
		}
		if b.HasSourceFile {
			s.AddFile(b.SourceFile, b.LinesFound, b.LinesHit)
		} else {
			s.AddTotals(b.LinesFound, b.LinesHit)
		}
	}
	if s.Totals.TotalLines == 0 {
		return nil, ErrNoCoverageData
	}
	return s, nil
}

// ReadFile returns the contents of the tracefile at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &MissingInputError{Path: path}
		}
		return "", fmt.Errorf("lcov: read %s: %w", path, err)
	}
	return string(data), nil
}

// Load reads and parses the tracefile at path.
func Load(path string) (*report.Summary, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}
