package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes one line per instruction: its pc, mnemonic, operand,
// and resolved source position. Grounded on the teacher's
// Chunk.GetDebugInfo-per-instruction convention.
func Disassemble(w io.Writer, c *Chunk, name string) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", name); err != nil {
		return err
	}
	for pc, in := range c.Code {
		pos := c.PositionAt(pc)
		if _, err := fmt.Fprintf(w, "%04d  %-24s  ; %s\n", pc, in.String(), pos); err != nil {
			return err
		}
	}
	return nil
}
