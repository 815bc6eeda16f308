package vm

import (
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// execInitEnv implements spec §4.4.1's InitEnv: captures the current
// environment as the topmost Function's lexical parent and snapshots the
// current constant pool into it. Emitted once per function-literal
// evaluation by the (out of scope) compiler.
func (f *Frame) execInitEnv() error {
	fnVal, err := f.pop()
	if err != nil {
		return err
	}
	fn, ok := fnVal.(*value.Function)
	if !ok {
		return f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "function expected"))
	}
	fn.Env = value.NewObjectWithProto(f.Env)
	fn.Constants = f.Constants
	f.push(fn)
	return nil
}

// execCall implements the Call(argc) opcode: pop the callee, then `this`,
// then argc arguments, in that order, per spec §4.4.1.
func (f *Frame) execCall(argc int) (bool, value.Value, error) {
	callee, err := f.pop()
	if err != nil {
		return false, nil, err
	}
	thisVal, err := f.pop()
	if err != nil {
		return false, nil, err
	}
	args := make([]value.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		v, err := f.pop()
		if err != nil {
			return false, nil, err
		}
		args[i] = v
	}
	return f.performCall(callee, thisVal, args)
}

// execApply implements Apply: identical to Call except the argument list
// is a single Array popped from the stack, and `this` is Nil.
func (f *Frame) execApply() (bool, value.Value, error) {
	callee, err := f.pop()
	if err != nil {
		return false, nil, err
	}
	argsVal, err := f.pop()
	if err != nil {
		return false, nil, err
	}
	arr, ok := argsVal.(*value.Array)
	if !ok {
		if err := f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "Array expected in apply")); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}
	args := make([]value.Value, len(arr.Elements))
	copy(args, arr.Elements)
	return f.performCall(callee, value.Nil, args)
}

// performCall dispatches on the callee's variant and either invokes a
// Native function synchronously or installs a Regular function's saved
// state, per spec §4.4.1.
func (f *Frame) performCall(callee value.Value, thisVal value.Value, args []value.Value) (bool, value.Value, error) {
	fn, ok := callee.(*value.Function)
	if !ok {
		if err := f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "function expected")); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	if fn.IsNative() {
		result, nerr := fn.Native(f, thisVal, args)
		if nerr != nil {
			if err := f.raise(errors.Wrap(nerr, f.Code.PositionAt(f.PC))); err != nil {
				return false, nil, err
			}
			return false, nil, nil
		}
		f.push(result)
		return false, nil, nil
	}

	f.ActiveFns = append(f.ActiveFns, fn)
	f.SaveStack = append(f.SaveStack, savedState{
		stack:     append([]value.Value(nil), f.Stack...),
		code:      f.Code,
		env:       f.Env,
		pc:        f.PC,
		constants: f.Constants,
	})

	if fn.YieldPos == nil {
		f.PC = fn.Entry
		f.Env = fn.Env
	} else {
		f.PC = *fn.YieldPos
		f.Env = fn.YieldEnv
	}
	f.Code = fn.Code
	f.Constants = fn.Constants

	for i, name := range fn.Params {
		if i < len(args) {
			value.DeclareOrOverwrite(fn.Env, name, args[i])
		} else {
			value.DeclareOrOverwrite(fn.Env, name, value.Undefined)
		}
	}
	value.DeclareOrOverwrite(fn.Env, "_args", value.NewArray(append([]value.Value(nil), args...)))
	value.DeclareOrOverwrite(fn.Env, "this", thisVal)

	return false, nil, nil
}

// execReturn implements Return. When the save-stack is empty this halts
// the interpreter (spec §4.4.1); the caller (Run) reports that as program
// completion with the returned Value.
func (f *Frame) execReturn() (halted bool, result value.Value, err error) {
	result = value.Undefined
	if len(f.Stack) > 0 {
		result, err = f.pop()
		if err != nil {
			return false, nil, err
		}
	}

	if len(f.SaveStack) == 0 {
		return true, result, nil
	}

	n := len(f.SaveStack)
	saved := f.SaveStack[n-1]
	f.SaveStack = f.SaveStack[:n-1]

	f.Constants = saved.constants
	f.PC = saved.pc
	f.Env = saved.env
	f.Code = saved.code
	f.Stack = saved.stack

	if len(f.ActiveFns) > 0 {
		top := f.ActiveFns[len(f.ActiveFns)-1]
		top.ResetYield()
		f.ActiveFns = f.ActiveFns[:len(f.ActiveFns)-1]
	}

	f.push(result)
	return false, nil, nil
}

// execYield implements Yield: pop the yielded value, record resumption
// state into the active Function, and restore saved state exactly as
// Return does — but without popping the active-function or clearing its
// yield state, since the generator is merely suspended, not finished.
func (f *Frame) execYield() error {
	yielded, err := f.pop()
	if err != nil {
		return err
	}
	if len(f.ActiveFns) == 0 {
		return errors.New(errors.GeneratorStateMissing, f.Code.PositionAt(f.PC), "can not find function state")
	}
	if len(f.SaveStack) == 0 {
		return errors.New(errors.GeneratorStateMissing, f.Code.PositionAt(f.PC), "can not find function state")
	}

	top := f.ActiveFns[len(f.ActiveFns)-1]
	pc := f.PC
	top.YieldPos = &pc
	top.YieldEnv = f.Env

	n := len(f.SaveStack)
	saved := f.SaveStack[n-1]
	f.SaveStack = f.SaveStack[:n-1]

	f.Constants = saved.constants
	f.PC = saved.pc
	f.Env = saved.env
	f.Code = saved.code
	f.Stack = saved.stack

	f.push(yielded)
	return nil
}
