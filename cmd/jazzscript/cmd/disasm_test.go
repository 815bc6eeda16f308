package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
)

// TestDisasmFileReadsAndDecodesChunk is a smoke test for the disasm
// subcommand's wiring: write an encoded Chunk to a temp file and confirm
// disasmFile reads, decodes, and renders it without error.
func TestDisasmFileReadsAndDecodesChunk(t *testing.T) {
	c := bytecode.NewChunk()
	c.AddConstant(float64(1))
	c.Emit(bytecode.Idx(bytecode.LoadConst, 0), bytecode.Position{File: "t.jz", Line: 1})
	c.Emit(bytecode.Op0(bytecode.Return), bytecode.Position{File: "t.jz", Line: 2})

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "prog.jzc")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := disasmFile(nil, []string{path}); err != nil {
		t.Errorf("disasmFile returned an error: %v", err)
	}
}

func TestDisasmFileMissingPathFails(t *testing.T) {
	if err := disasmFile(nil, []string{filepath.Join(t.TempDir(), "nope.jzc")}); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
