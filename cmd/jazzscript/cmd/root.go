// Package cmd wires the jazzscript CLI's subcommands. Grounded on the
// go-dws example's cmd/dwscript/cmd package layout (a package-level
// rootCmd, each subcommand in its own file registering itself from init).
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"

	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "jazzscript",
	Short:   "Execution core for the JazzScript bytecode virtual machine",
	Version: Version,
}

// Execute runs the root command and returns any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled reports whether stderr is a real terminal and the user
// hasn't asked for plain output, mirroring the teacher's use of
// mattn/go-isatty to gate ANSI escapes on the diagnostics this package
// writes (verbose notices, reported errors).
func colorEnabled() bool {
	return !noColor && isatty.IsTerminal(os.Stderr.Fd())
}

// colorize wraps s in the given SGR code when colorEnabled, else returns
// it unchanged.
func colorize(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}

// FormatError renders an error the way main reports it to stderr, in red
// when the terminal supports it.
func FormatError(err error) string {
	return colorize("31", fmt.Sprintf("Error: %s", err))
}

func errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
