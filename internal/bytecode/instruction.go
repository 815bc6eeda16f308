package bytecode

import "fmt"

// Instruction is the logical, non-binary-exact encoding of a single opcode
// plus its operand, per spec §6: "each opcode is a tagged variant whose
// payload is one of: none, a small integer ... a string ... or an absolute
// bytecode address." At most one of Int/Str is meaningful for any given Op;
// which one is documented per opcode below.
//
//	Int payload: LoadConst (constant index), LoadInt (literal value),
//	             ConstructArray (element count), Call (argument count),
//	             Jump/JumpIf/JumpIfFalse/PushCatch (absolute address)
//	Str payload: LoadVar/DeclVar/StoreVar (variable name)
//	no payload:  everything else
type Instruction struct {
	Op  OpCode
	Int int
	Str string
}

// Addr constructs a control-flow instruction carrying an absolute target.
func Addr(op OpCode, target int) Instruction { return Instruction{Op: op, Int: target} }

// Idx constructs an instruction carrying a small integer operand (a
// constant-pool index, an argument count, or an element count).
func Idx(op OpCode, n int) Instruction { return Instruction{Op: op, Int: n} }

// Named constructs an instruction carrying a variable name.
func Named(op OpCode, name string) Instruction { return Instruction{Op: op, Str: name} }

// Op0 constructs a no-operand instruction.
func Op0(op OpCode) Instruction { return Instruction{Op: op} }

// String renders the instruction as `Mnemonic operand`, used by the
// disassembler.
func (in Instruction) String() string {
	switch in.Op {
	case LoadVar, DeclVar, StoreVar:
		return fmt.Sprintf("%s %q", in.Op, in.Str)
	case LoadConst, LoadInt, ConstructArray, Call, Jump, JumpIf, JumpIfFalse, PushCatch:
		return fmt.Sprintf("%s %d", in.Op, in.Int)
	default:
		return in.Op.String()
	}
}
