package value

import "github.com/jazz-lang/JazzScript/internal/bytecode"

// NativeFunc is the host-callable contract from spec §6: a mutable handle
// back into the calling Frame (so a native function can recursively invoke
// the engine), the `this` value, and the argument slice. The Frame type is
// declared by internal/vm, so this package only names the shape via a
// generic interface to avoid an import cycle (vm already depends on value).
type NativeFunc func(frame interface{}, this Value, args []Value) (Value, error)

// Function is spec §3's Function value: two variants distinguished by
// whether Native is set.
//
//   - Native: Name and Native populated, everything else zero.
//   - Regular: every other field populated; Native is nil.
type Function struct {
	Name string

	// Native variant.
	Native NativeFunc

	// Regular variant — fixed at compile time.
	Params []string
	Entry  int
	Code   *bytecode.Chunk

	// Regular variant — mutated by InitEnv (capture) and Call/Yield/Return
	// (generator resumption state).
	Env       *Object  // captured lexical environment; nil until InitEnv runs
	Constants []Value  // snapshot of the constant pool at InitEnv time
	YieldPos  *int     // nil until the function has executed Yield at least once
	YieldEnv  *Object  // environment to resume into, paired with YieldPos
}

// IsNative reports whether this Function is the Native variant.
func (f *Function) IsNative() bool { return f.Native != nil }

// IsGenerator reports whether this Function has yielded at least once and
// is therefore resumable by a subsequent Call (spec glossary: "Generator").
func (f *Function) IsGenerator() bool { return f.YieldPos != nil }

// ResetYield clears resumption state, called by Return so a function that
// runs to completion starts over from its entry point next time it is
// called (spec §4.4.1: "clears the top active Function's yield_pos").
func (f *Function) ResetYield() {
	f.YieldPos = nil
	f.YieldEnv = nil
}

// Display renders a function for string coercion.
func (f *Function) Display() string {
	if f.Name == "" {
		return "<function>"
	}
	return "<function " + f.Name + ">"
}
