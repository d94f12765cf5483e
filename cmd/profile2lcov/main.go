// Command profile2lcov converts a Go text coverage profile into an LCOV
// tracefile that lcovsummary can read.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"golang.org/x/tools/cover"

	"github.com/yag13s/lcovsummary/internal/cli"
	"github.com/yag13s/lcovsummary/internal/lcov"
)

var version = "dev"

func init() {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		cli.Fail(os.Stderr, "profile2lcov", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("profile2lcov", flag.ContinueOnError)
	profilePath := fs.String("profile", "", "path to text coverage profile file (go test -coverprofile)")
	outputFile := fs.String("o", lcov.DefaultPath, "output tracefile")
	showVersion := fs.Bool("version", false, "print version information")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "profile2lcov %s\n", version)
		return nil
	}
	if *profilePath == "" {
		return fmt.Errorf("-profile is required")
	}

	profiles, err := cover.ParseProfiles(*profilePath)
	if err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}

	records := lcov.FromProfiles(profiles)
	if err := lcov.WriteFile(*outputFile, records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d records to %s\n", len(records), *outputFile)
	return nil
}
