package vm

import (
	"github.com/jazz-lang/JazzScript/internal/bytecode"
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// Run drives the fetch-decode-execute loop over f's Code until a top-level
// Return halts it (spec §4.4.1) or an uncaught failure propagates to the
// host. The returned Value is whatever the outermost Return produced.
func (f *Frame) Run() (value.Value, error) {
	for {
		if f.PC < 0 || f.PC >= len(f.Code.Code) {
			return nil, errors.New(errors.StackUnderflow, f.Code.PositionAt(f.PC), "program counter out of bounds")
		}
		in := f.Code.Code[f.PC]
		f.PC++
		f.Steps++

		halted, result, err := f.step(in)
		if err != nil {
			// Failures that step returns without going through raise (stack
			// underflow, missing generator state, ...) still transfer to a
			// registered handler.
			if execErr, ok := err.(*errors.ExecError); ok && len(f.CatchStack) > 0 {
				f.raise(execErr)
				continue
			}
			return nil, err
		}
		if halted {
			return result, nil
		}
	}
}

// step executes a single Instruction. It returns halted=true only when a
// Return drains the save-stack, signalling program completion.
func (f *Frame) step(in bytecode.Instruction) (halted bool, result value.Value, err error) {
	switch in.Op {

	case bytecode.LoadConst:
		if in.Int < 0 || in.Int >= len(f.Constants) {
			return false, nil, errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "constant index out of range")
		}
		f.push(f.Constants[in.Int])

	case bytecode.LoadInt:
		f.push(float64(in.Int))

	case bytecode.LoadTrue:
		f.push(true)

	case bytecode.LoadFalse:
		f.push(false)

	case bytecode.LoadNil:
		f.push(value.Nil)

	case bytecode.LoadUndef:
		f.push(value.Undefined)

	case bytecode.Dup:
		v, perr := f.peek()
		if perr != nil {
			return false, nil, perr
		}
		f.push(v)

	case bytecode.LoadVar:
		v, lerr := value.Lookup(f.Env, in.Str)
		if lerr != nil {
			if rerr := f.raise(errors.New(errors.UndeclaredVariable, f.Code.PositionAt(f.PC), "%s", lerr.Error())); rerr != nil {
				return false, nil, rerr
			}
			break
		}
		f.push(v)

	case bytecode.DeclVar:
		v, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		if derr := value.Declare(f.Env, in.Str, v); derr != nil {
			if rerr := f.raise(errors.New(errors.DuplicateDeclaration, f.Code.PositionAt(f.PC), "%s", derr.Error())); rerr != nil {
				return false, nil, rerr
			}
		}

	case bytecode.StoreVar:
		v, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		if aerr := value.Assign(f.Env, in.Str, v); aerr != nil {
			if rerr := f.raise(errors.New(errors.UndeclaredVariable, f.Code.PositionAt(f.PC), "%s", aerr.Error())); rerr != nil {
				return false, nil, rerr
			}
		}

	case bytecode.PushEnv:
		f.Env = value.NewObjectWithProto(f.Env)

	case bytecode.PopEnv:
		if f.Env.Proto == nil {
			panic("PopEnv: current environment has no parent scope")
		}
		f.Env = f.Env.Proto

	case bytecode.NewObj:
		f.push(value.NewObject())

	case bytecode.ConstructArray:
		n := in.Int
		elems := make([]value.Value, n)
		for i := n - 1; i >= 0; i-- {
			v, perr := f.pop()
			if perr != nil {
				return false, nil, perr
			}
			elems[i] = v
		}
		f.push(value.NewArray(elems))

	case bytecode.Load:
		key, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		target, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		v, lerr := value.Load(target, key)
		if lerr != nil {
			if rerr := f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "%s", lerr.Error())); rerr != nil {
				return false, nil, rerr
			}
			break
		}
		f.push(v)

	case bytecode.Store:
		v, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		key, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		target, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		if serr := value.Store(target, key, v); serr != nil {
			if rerr := f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "%s", serr.Error())); rerr != nil {
				return false, nil, rerr
			}
		}

	case bytecode.Jump:
		f.PC = in.Int

	case bytecode.JumpIf:
		cond, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		if value.Truthy(cond) {
			f.PC = in.Int
		}

	case bytecode.JumpIfFalse:
		cond, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		if !value.Truthy(cond) {
			f.PC = in.Int
		}

	case bytecode.Label:
		// no-op marker, purely for the disassembler/assembler

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Rem,
		bytecode.Shl, bytecode.Shr, bytecode.BitAnd, bytecode.BitOr, bytecode.BitXor,
		bytecode.And, bytecode.Or, bytecode.Gt, bytecode.Ge, bytecode.Lt, bytecode.Le,
		bytecode.Eq, bytecode.Ne, bytecode.RefEq, bytecode.RefNeq:
		b, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		a, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		f.push(binaryOp(in.Op, a, b))

	case bytecode.Not:
		a, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		f.push(value.Not(a))

	case bytecode.Neg:
		a, perr := f.pop()
		if perr != nil {
			return false, nil, perr
		}
		f.push(value.Neg(a))

	case bytecode.InitEnv:
		if ierr := f.execInitEnv(); ierr != nil {
			return false, nil, ierr
		}

	case bytecode.Call:
		h, r, cerr := f.execCall(in.Int)
		if cerr != nil {
			return false, nil, cerr
		}
		if h {
			return true, r, nil
		}

	case bytecode.Apply:
		h, r, cerr := f.execApply()
		if cerr != nil {
			return false, nil, cerr
		}
		if h {
			return true, r, nil
		}

	case bytecode.Return:
		h, r, rerr := f.execReturn()
		if rerr != nil {
			return false, nil, rerr
		}
		if h {
			return true, r, nil
		}

	case bytecode.Yield:
		if yerr := f.execYield(); yerr != nil {
			return false, nil, yerr
		}

	case bytecode.PushCatch:
		f.pushCatch(in.Int)

	case bytecode.PopCatch:
		f.popCatch()

	case bytecode.Throw:
		if terr := f.execThrow(); terr != nil {
			return false, nil, terr
		}

	case bytecode.NewIter:
		if ierr := f.execNewIter(); ierr != nil {
			return false, nil, ierr
		}

	case bytecode.IterHasNext:
		if ierr := f.execIterHasNext(); ierr != nil {
			return false, nil, ierr
		}

	case bytecode.IterNext:
		if ierr := f.execIterNext(); ierr != nil {
			return false, nil, ierr
		}

	default:
		return false, nil, errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "unknown opcode %s", in.Op)
	}

	return false, nil, nil
}

// binaryOp dispatches the arithmetic/logical/comparison opcodes to their
// value-package implementations (spec §4.1).
func binaryOp(op bytecode.OpCode, a, b value.Value) value.Value {
	switch op {
	case bytecode.Add:
		return value.Add(a, b)
	case bytecode.Sub:
		return value.Sub(a, b)
	case bytecode.Mul:
		return value.Mul(a, b)
	case bytecode.Div:
		return value.Div(a, b)
	case bytecode.Rem:
		return value.Rem(a, b)
	case bytecode.Shl:
		return value.Shl(a, b)
	case bytecode.Shr:
		return value.Shr(a, b)
	case bytecode.BitAnd:
		return value.BitAnd(a, b)
	case bytecode.BitOr:
		return value.BitOr(a, b)
	case bytecode.BitXor:
		return value.BitXor(a, b)
	case bytecode.And:
		return value.And(a, b)
	case bytecode.Or:
		return value.Or(a, b)
	case bytecode.Gt:
		return value.Gt(a, b)
	case bytecode.Ge:
		return value.Ge(a, b)
	case bytecode.Lt:
		return value.Lt(a, b)
	case bytecode.Le:
		return value.Le(a, b)
	case bytecode.Eq:
		return value.Eq(a, b)
	case bytecode.Ne:
		return value.Ne(a, b)
	case bytecode.RefEq:
		return value.RefEq(a, b)
	case bytecode.RefNeq:
		return !value.RefEq(a, b)
	default:
		return value.Undefined
	}
}
