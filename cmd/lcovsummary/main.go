// Command lcovsummary prints overall line coverage from coverage/lcov.info
// and lists the files with the lowest coverage.
package main

import (
	"io"
	"os"

	"github.com/yag13s/lcovsummary/internal/cli"
	"github.com/yag13s/lcovsummary/internal/lcov"
)

func main() {
	if err := run(os.Stdout, lcov.DefaultPath); err != nil {
		cli.Fail(os.Stderr, "lcovsummary", err)
		os.Exit(1)
	}
}

// run loads the tracefile at path and writes the summary to w. Nothing is
// written when loading fails.
func run(w io.Writer, path string) error {
	summary, err := lcov.Load(path)
	if err != nil {
		return err
	}
	return summary.Write(w)
}
