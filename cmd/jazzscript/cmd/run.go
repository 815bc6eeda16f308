package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
	"github.com/jazz-lang/JazzScript/internal/value"
	"github.com/jazz-lang/JazzScript/internal/vm"
)

var showStats bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a compiled bytecode chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunk,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&showStats, "stats", false, "print run id, instruction count, and elapsed time after execution")
}

func runChunk(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errorf("reading %s: %w", args[0], err)
	}

	chunk, err := bytecode.Decode(data)
	if err != nil {
		return errorf("decoding %s: %w", args[0], err)
	}

	machine := vm.NewMachine(chunk)
	frame := machine.NewTopLevelFrame()

	start := time.Now()
	result, runErr := frame.Run()
	elapsed := time.Since(start)

	if verbose {
		fmt.Fprintln(os.Stderr, colorize("2", fmt.Sprintf("loaded %s from %s", humanize.Bytes(uint64(len(data))), args[0])))
	}

	if runErr != nil {
		return runErr
	}

	fmt.Println(value.Display(result))

	if showStats {
		fmt.Fprintf(os.Stderr, "run %s: %s instructions in %s\n",
			machine.RunID, humanize.Comma(frame.Steps), elapsed)
	}
	return nil
}
