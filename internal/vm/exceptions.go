package vm

import (
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// errorProto is the shared prototype every exception Object points at, so
// that `error.__proto__.__name__` (or, via the environment-style Load
// chain, `error.__name__`) reads "JLRuntimeError" as spec §4.4.2 requires.
var errorProto = func() *value.Object {
	p := value.NewObject()
	p.Set("__name__", "JLRuntimeError")
	return p
}()

// exceptionValue builds the catchable Object payload spec §4.4.2 assigns to
// every runtime failure: a JLRuntimeError-prototyped Object with line,
// file, and error slots.
func exceptionValue(err *errors.ExecError) *value.Object {
	o := value.NewObjectWithProto(errorProto)
	o.Set("line", float64(err.Position.Line))
	o.Set("file", err.Position.File)
	o.Set("error", err.Message)
	return o
}

// pushCatch registers a handler address, additionally remembering the
// operand-stack depth at this point so a mid-expression failure doesn't
// leave stale operands from the failed subexpression sitting under the
// pushed exception value — the same hygiene the teacher's
// TryFrame.stackDepth performs.
func (f *Frame) pushCatch(addr int) {
	f.CatchStack = append(f.CatchStack, addr)
	f.catchDepths = append(f.catchDepths, len(f.Stack))
}

func (f *Frame) popCatch() {
	if len(f.CatchStack) == 0 {
		return
	}
	f.CatchStack = f.CatchStack[:len(f.CatchStack)-1]
	f.catchDepths = f.catchDepths[:len(f.catchDepths)-1]
}

// raise performs spec §4.4.2's exception transfer: if a handler is
// registered, control jumps to it with the exception Object on top of the
// operand stack; otherwise the failure propagates to the host as an error
// (which Run returns; cmd/jazzscript maps it to spec §6's exit codes).
func (f *Frame) raise(err *errors.ExecError) error {
	if len(f.CatchStack) == 0 {
		return err
	}
	n := len(f.CatchStack)
	addr := f.CatchStack[n-1]
	depth := f.catchDepths[n-1]
	f.CatchStack = f.CatchStack[:n-1]
	f.catchDepths = f.catchDepths[:n-1]

	if len(f.Stack) > depth {
		f.Stack = f.Stack[:depth]
	}
	f.PC = addr
	f.push(exceptionValue(err))
	return nil
}

// execThrow implements the Throw opcode: pop a Value (Undefined if the
// stack is empty, per spec §4.4.2), and perform the same transfer using it
// as the payload.
func (f *Frame) execThrow() error {
	var payload value.Value = value.Undefined
	if len(f.Stack) > 0 {
		v, err := f.pop()
		if err != nil {
			return err
		}
		payload = v
	}
	return f.raiseValue(payload)
}

// raiseValue performs Throw's transfer (spec §4.4.2): unlike raise, which
// wraps an internal VM failure in a fresh JLRuntimeError Object, this
// delivers the popped Value itself to the handler unchanged — matching the
// original's `push_ref(error)` — so a thrown Object keeps its identity and
// fields (`caught RefEq thrown` holds) instead of being replaced by a
// line/file/error wrapper. If nothing catches it, it is reported to the
// host as an explicit-Throw ExecError so the CLI can exit -1 rather than 1.
func (f *Frame) raiseValue(payload value.Value) error {
	if len(f.CatchStack) == 0 {
		return errors.NewExplicitThrow(payload, f.Code.PositionAt(f.PC), throwMessage(payload))
	}
	n := len(f.CatchStack)
	addr := f.CatchStack[n-1]
	depth := f.catchDepths[n-1]
	f.CatchStack = f.CatchStack[:n-1]
	f.catchDepths = f.catchDepths[:n-1]

	if len(f.Stack) > depth {
		f.Stack = f.Stack[:depth]
	}
	f.PC = addr
	f.push(payload)
	return nil
}

// throwMessage renders a human-readable summary of an uncaught thrown
// Value, preferring an "error" field if the payload is an Object shaped
// like one.
func throwMessage(payload value.Value) string {
	msg := value.Display(payload)
	if o, ok := payload.(*value.Object); ok {
		if e, ok := o.GetOwn("error"); ok {
			msg = value.Display(e)
		}
	}
	return "Runtime exception: " + msg
}
