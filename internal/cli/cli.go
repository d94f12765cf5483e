// Package cli holds the diagnostics shared by the lcovsummary commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Fail prints "prog: err" as a single line to w. The prefix is red when w is
// a terminal and NO_COLOR is unset.
func Fail(w io.Writer, prog string, err error) {
	prefix := color.New(color.FgRed, color.Bold)
	if isTerminal(w) && os.Getenv("NO_COLOR") == "" {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	prefix.Fprintf(w, "%s:", prog)
	fmt.Fprintf(w, " %v\n", err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
