// Package vm implements spec §2's Machine and Frame: the interpreter that
// executes a bytecode.Chunk to completion over the internal/value universe.
// Grounded on the teacher's internal/vm/vm.go (EnhancedVM: a flat operand
// stack, a frame stack driving Call/Return without native recursion, a
// try-stack for exception unwinding) and internal/vmregister/value.go's
// FiberObj (per-Function resumption state: saved PC, saved registers,
// parent link) for the yield/resume protocol.
package vm

import (
	"github.com/google/uuid"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// Machine owns the top-level constant pool and the chunk it was compiled
// into (spec §2, component 6). A Machine is reusable: NewTopLevelFrame can be
// called more than once against the same Machine (e.g. a host re-entering
// the engine from a native callback, per spec §5).
type Machine struct {
	Chunk     *bytecode.Chunk
	Constants []value.Value
	RunID     uuid.UUID
}

// NewMachine converts the chunk's raw constant pool into value.Values once,
// mirroring the teacher's precacheConstants. Number, String, Bool, and Nil
// constants are kept as they are; any other entry becomes Undefined.
func NewMachine(chunk *bytecode.Chunk) *Machine {
	m := &Machine{
		Chunk:     chunk,
		Constants: make([]value.Value, len(chunk.Constants)),
		RunID:     uuid.New(),
	}
	for i, c := range chunk.Constants {
		switch v := c.(type) {
		case float64:
			m.Constants[i] = v
		case string:
			m.Constants[i] = v
		case bool:
			m.Constants[i] = v
		case value.NilType:
			m.Constants[i] = v
		default:
			m.Constants[i] = value.Undefined
		}
	}
	return m
}

// NewTopLevelFrame returns a Frame ready to execute the Machine's chunk
// from pc 0, in a fresh root environment with no parent scope.
func (m *Machine) NewTopLevelFrame() *Frame {
	return &Frame{
		Machine:   m,
		Code:      m.Chunk,
		Constants: m.Constants,
		Env:       value.NewObject(),
	}
}
