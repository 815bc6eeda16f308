package vm

import (
	"github.com/jazz-lang/JazzScript/internal/bytecode"
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// savedState is one entry of the Frame's save-stack: the suspended
// execution state pushed by Call and popped by Return/Yield, in the exact
// order spec §4.4.1 step 2 specifies (operand stack, bytecode reference,
// environment, PC, constant-pool reference) and restored in the reverse
// order spec §4.4.1's Return describes.
type savedState struct {
	stack     []value.Value
	code      *bytecode.Chunk
	env       *value.Object
	pc        int
	constants []value.Value
}

// Frame is spec §2's component 7: the single execution unit. One Frame
// drives one logical instruction stream; Call/Return/Yield never recurse
// into a new Frame value, they save/restore state within this one (spec
// §2: "may enter nested frames via Call (handled within the same Frame via
// save/restore rather than recursion)").
type Frame struct {
	Machine *Machine

	PC        int
	Stack     []value.Value
	Code      *bytecode.Chunk
	Constants []value.Value
	Env       *value.Object

	SaveStack   []savedState
	CatchStack  []int
	catchDepths []int
	ActiveFns   []*value.Function

	// Steps counts executed instructions, surfaced by the CLI's --stats
	// flag; it plays no role in execution semantics.
	Steps int64
}

func (f *Frame) push(v value.Value) {
	f.Stack = append(f.Stack, v)
}

func (f *Frame) pop() (value.Value, error) {
	n := len(f.Stack)
	if n == 0 {
		return nil, errors.New(errors.StackUnderflow, f.Code.PositionAt(f.PC),
			"Stack empty. Current instruction: %s", f.currentInstruction())
	}
	v := f.Stack[n-1]
	f.Stack = f.Stack[:n-1]
	return v, nil
}

func (f *Frame) peek() (value.Value, error) {
	n := len(f.Stack)
	if n == 0 {
		return nil, errors.New(errors.StackUnderflow, f.Code.PositionAt(f.PC),
			"Stack empty. Current instruction: %s", f.currentInstruction())
	}
	return f.Stack[n-1], nil
}

func (f *Frame) currentInstruction() string {
	pc := f.PC - 1
	if pc < 0 || pc >= len(f.Code.Code) {
		return "<out of bounds>"
	}
	return f.Code.Code[pc].String()
}

// Empty reports whether every bookkeeping stack is drained, the invariant
// spec §8.1 requires after normal termination.
func (f *Frame) Empty() bool {
	return len(f.SaveStack) == 0 && len(f.ActiveFns) == 0 && len(f.CatchStack) == 0
}
