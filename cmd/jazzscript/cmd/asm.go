package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jazz-lang/JazzScript/internal/asmtext"
	"github.com/jazz-lang/JazzScript/internal/value"
	"github.com/jazz-lang/JazzScript/internal/vm"
)

var (
	asmOut    string
	asmAndRun bool
)

var asmCmd = &cobra.Command{
	Use:   "asm <file.jzasm>",
	Short: "Assemble a textual opcode sequence into a bytecode chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  assembleFile,
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().StringVarP(&asmOut, "out", "o", "", "write the encoded chunk to this file instead of running it")
	asmCmd.Flags().BoolVar(&asmAndRun, "run", true, "execute the assembled chunk immediately (default, unless --out is given)")
}

func assembleFile(_ *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return errorf("reading %s: %w", args[0], err)
	}

	chunk, err := asmtext.Assemble(string(src), args[0])
	if err != nil {
		return err
	}

	if asmOut != "" {
		data, err := chunk.Encode()
		if err != nil {
			return errorf("encoding chunk: %w", err)
		}
		if err := os.WriteFile(asmOut, data, 0o644); err != nil {
			return errorf("writing %s: %w", asmOut, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(data), asmOut)
		}
		return nil
	}
	if !asmAndRun {
		return nil
	}

	machine := vm.NewMachine(chunk)
	frame := machine.NewTopLevelFrame()
	result, runErr := frame.Run()
	if runErr != nil {
		return runErr
	}
	fmt.Println(value.Display(result))
	return nil
}
