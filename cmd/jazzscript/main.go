// Command jazzscript is the reference host for the execution core: it can
// assemble, disassemble, and run compiled programs. It owns the only
// os.Exit calls in the module, per spec §6's exit-code contract: 0 on
// success, 1 for a reported failure (a bad CLI invocation, decode error,
// or an internal VM failure like a type error), -1 for an unexpected
// internal error (a Go panic) or a script's uncaught explicit Throw.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jazz-lang/JazzScript/cmd/jazzscript/cmd"
	execerrors "github.com/jazz-lang/JazzScript/internal/errors"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "internal error:", r)
			os.Exit(-1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.FormatError(err))

		var execErr *execerrors.ExecError
		if errors.As(err, &execErr) && execErr.Explicit {
			os.Exit(-1)
		}
		os.Exit(1)
	}
}
