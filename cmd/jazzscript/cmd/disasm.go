package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file>",
	Short: "Print the disassembly of a compiled bytecode chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  disasmFile,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func disasmFile(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errorf("reading %s: %w", args[0], err)
	}
	chunk, err := bytecode.Decode(data)
	if err != nil {
		return errorf("decoding %s: %w", args[0], err)
	}
	return bytecode.Disassemble(os.Stdout, chunk, args[0])
}
