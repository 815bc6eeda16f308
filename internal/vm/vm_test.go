package vm

import (
	"testing"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// buildChunk assembles a Chunk from bare instructions at consecutive pcs,
// mirroring the teacher's runVM helper but against the tagged Instruction
// encoding instead of raw bytes.
func buildChunk(constants []interface{}, code ...bytecode.Instruction) *bytecode.Chunk {
	c := bytecode.NewChunk()
	c.Constants = constants
	for _, in := range code {
		c.Emit(in, bytecode.Position{})
	}
	return c
}

func runProgram(chunk *bytecode.Chunk) (value.Value, *Frame, error) {
	m := NewMachine(chunk)
	f := m.NewTopLevelFrame()
	result, err := f.Run()
	return result, f, err
}

// TestArithmetic covers scenario S1: constant loads feeding the operator
// algebra, ending in Return.
func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		code     []bytecode.Instruction
		expected value.Value
	}{
		{
			name: "2 + 3",
			code: []bytecode.Instruction{
				bytecode.Idx(bytecode.LoadInt, 2),
				bytecode.Idx(bytecode.LoadInt, 3),
				bytecode.Op0(bytecode.Add),
				bytecode.Op0(bytecode.Return),
			},
			expected: float64(5),
		},
		{
			name: "(2 + 3) * 4",
			code: []bytecode.Instruction{
				bytecode.Idx(bytecode.LoadInt, 2),
				bytecode.Idx(bytecode.LoadInt, 3),
				bytecode.Op0(bytecode.Add),
				bytecode.Idx(bytecode.LoadInt, 4),
				bytecode.Op0(bytecode.Mul),
				bytecode.Op0(bytecode.Return),
			},
			expected: float64(20),
		},
		{
			name: `"a" + 1`,
			code: []bytecode.Instruction{
				bytecode.Idx(bytecode.LoadConst, 0),
				bytecode.Idx(bytecode.LoadInt, 1),
				bytecode.Op0(bytecode.Add),
				bytecode.Op0(bytecode.Return),
			},
			expected: "a1",
		},
	}

	for _, tt := range tests {
		chunk := buildChunk([]interface{}{"a"}, tt.code...)
		result, frame, err := runProgram(chunk)
		if err != nil {
			t.Errorf("test[%s] - error: %v", tt.name, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("test[%s] - wrong result. got=%v, want=%v", tt.name, result, tt.expected)
		}
		if !frame.Empty() {
			t.Errorf("test[%s] - frame not empty after halt: save=%d active=%d catch=%d",
				tt.name, len(frame.SaveStack), len(frame.ActiveFns), len(frame.CatchStack))
		}
	}
}

// TestScopeShadowing covers scenario S2: PushEnv/DeclVar/LoadVar/PopEnv
// chaining, and the invariant that a popped scope's declaration is gone.
func TestScopeShadowing(t *testing.T) {
	chunk := buildChunk(nil,
		bytecode.Idx(bytecode.LoadInt, 1),
		bytecode.Named(bytecode.DeclVar, "x"),
		bytecode.Op0(bytecode.PushEnv),
		bytecode.Idx(bytecode.LoadInt, 2),
		bytecode.Named(bytecode.DeclVar, "x"),
		bytecode.Named(bytecode.LoadVar, "x"),
		bytecode.Op0(bytecode.PopEnv),
		bytecode.Named(bytecode.LoadVar, "x"),
		bytecode.Op0(bytecode.Add),
		bytecode.Op0(bytecode.Return),
	)
	result, _, err := runProgram(chunk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != float64(3) {
		t.Errorf("wrong result. got=%v, want=3 (inner 2 + outer 1)", result)
	}
}

// TestClosureCapturesEnvironment covers scenario S3: InitEnv captures the
// defining scope, and a call into the closure reads a variable of that
// scope through its captured environment's scope chain.
func TestClosureCapturesEnvironment(t *testing.T) {
	// Outer chunk:
	//   0: LoadInt 41         ; captured value
	//   1: DeclVar "n"
	//   2: LoadConst 0        ; the closure's own Function value
	//   3: InitEnv            ; capture current env (has "n")
	//   4: DeclVar "f"
	//   5: LoadNil            ; this
	//   6: LoadVar "f"        ; callee, popped first by Call
	//   7: Call 0
	//   8: Return
	//
	// Closure body chunk (entry 0):
	//   0: LoadVar "n"
	//   1: LoadInt 1
	//   2: Add
	//   3: Return
	closureCode := buildChunk(nil,
		bytecode.Named(bytecode.LoadVar, "n"),
		bytecode.Idx(bytecode.LoadInt, 1),
		bytecode.Op0(bytecode.Add),
		bytecode.Op0(bytecode.Return),
	)
	fn := &value.Function{Name: "f", Params: nil, Entry: 0, Code: closureCode}

	outer := buildChunk([]interface{}{fn},
		bytecode.Idx(bytecode.LoadInt, 41),
		bytecode.Named(bytecode.DeclVar, "n"),
		bytecode.Idx(bytecode.LoadConst, 0),
		bytecode.Op0(bytecode.InitEnv),
		bytecode.Named(bytecode.DeclVar, "f"),
		bytecode.Op0(bytecode.LoadNil),
		bytecode.Named(bytecode.LoadVar, "f"),
		bytecode.Idx(bytecode.Call, 0),
		bytecode.Op0(bytecode.Return),
	)

	// NewMachine keeps only literal constants, so the Function is placed
	// into the frame's constant pool directly.
	m := NewMachine(outer)
	frame := m.NewTopLevelFrame()
	frame.Constants[0] = fn
	result, err := frame.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != float64(42) {
		t.Errorf("wrong result. got=%v, want=42", result)
	}
	if !frame.Empty() {
		t.Errorf("frame not empty after halt")
	}
}

// TestGeneratorYieldResume covers scenario S4: a generator function that
// yields twice, resumed by two separate Calls, preserving its environment
// across suspension.
func TestGeneratorYieldResume(t *testing.T) {
	// Generator body:
	//   0: LoadInt 1
	//   1: Yield
	//   2: LoadInt 2
	//   3: Yield
	//   4: LoadInt 3
	//   5: Return
	genCode := buildChunk(nil,
		bytecode.Idx(bytecode.LoadInt, 1),
		bytecode.Op0(bytecode.Yield),
		bytecode.Idx(bytecode.LoadInt, 2),
		bytecode.Op0(bytecode.Yield),
		bytecode.Idx(bytecode.LoadInt, 3),
		bytecode.Op0(bytecode.Return),
	)
	gen := &value.Function{Name: "gen", Entry: 0, Code: genCode, Env: value.NewObject(), Constants: nil}

	call := func() (value.Value, error) {
		outer := buildChunk([]interface{}{gen},
			bytecode.Op0(bytecode.LoadNil),
			bytecode.Idx(bytecode.LoadConst, 0),
			bytecode.Idx(bytecode.Call, 0),
			bytecode.Op0(bytecode.Return),
		)
		m := NewMachine(outer)
		f := m.NewTopLevelFrame()
		// NewMachine keeps only literal constants, so the same *Function is
		// placed into the frame's pool directly; its yield_pos/yield_env then
		// persist across the three separate calls.
		f.Constants[0] = gen
		return f.Run()
	}

	first, err := call()
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first != float64(1) {
		t.Errorf("first yield: got=%v want=1", first)
	}
	if !gen.IsGenerator() {
		t.Fatalf("expected generator to have suspended state after first yield")
	}

	second, err := call()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second != float64(2) {
		t.Errorf("second yield: got=%v want=2", second)
	}

	third, err := call()
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if third != float64(3) {
		t.Errorf("final return: got=%v want=3", third)
	}
	if gen.IsGenerator() {
		t.Errorf("expected yield state cleared after Return")
	}
}

// TestExceptionCaughtAtHandlerPC covers scenario S5: PushCatch installs a
// handler, a StoreVar to an undeclared name raises UndeclaredVariable, and
// control transfers to the handler address with the exception Object on
// top of the stack.
func TestExceptionCaughtAtHandlerPC(t *testing.T) {
	// 0: PushCatch 5 (handler at pc 5)
	// 1: LoadInt 1
	// 2: StoreVar "missing"   ; undeclared -> raises
	// 3: LoadInt 0            ; unreachable
	// 4: Jump 7
	// 5: PopCatch             ; handler: stack already has the exception Object
	// 6: Dup                  ; leave the exception object as the result
	// 7: Return
	chunk := buildChunk(nil,
		bytecode.Addr(bytecode.PushCatch, 5),
		bytecode.Idx(bytecode.LoadInt, 1),
		bytecode.Named(bytecode.StoreVar, "missing"),
		bytecode.Idx(bytecode.LoadInt, 0),
		bytecode.Addr(bytecode.Jump, 7),
		bytecode.Op0(bytecode.PopCatch),
		bytecode.Op0(bytecode.Dup),
		bytecode.Op0(bytecode.Return),
	)
	result, frame, err := runProgram(chunk)
	if err != nil {
		t.Fatalf("unexpected propagation to host: %v", err)
	}
	obj, ok := result.(*value.Object)
	if !ok {
		t.Fatalf("expected exception Object, got %T (%v)", result, result)
	}
	if name, _ := obj.Proto.GetOwn("__name__"); name != "JLRuntimeError" {
		t.Errorf("expected __name__ == JLRuntimeError, got %v", name)
	}
	if !frame.Empty() {
		t.Errorf("frame not empty after halt")
	}
}

// TestUncaughtExceptionPropagates checks that a failure with no registered
// handler surfaces to the host as a Go error rather than a Value.
func TestUncaughtExceptionPropagates(t *testing.T) {
	chunk := buildChunk(nil,
		bytecode.Idx(bytecode.LoadInt, 1),
		bytecode.Named(bytecode.StoreVar, "missing"),
		bytecode.Op0(bytecode.Return),
	)
	_, _, err := runProgram(chunk)
	if err == nil {
		t.Fatal("expected an uncaught-exception error")
	}
}

// TestArrayIteration covers scenario S6: NewIter/IterHasNext/IterNext over
// an Array, summing its elements, with the compiler-discipline of Dup-ing
// the iterator reference before each query.
func TestArrayIteration(t *testing.T) {
	// 0: LoadInt 1
	// 1: LoadInt 2
	// 2: LoadInt 3
	// 3: ConstructArray 3
	// 4: NewIter
	// 5: DeclVar "it"
	// 6: LoadInt 0
	// 7: DeclVar "sum"
	// loop:
	// 8: LoadVar "it"
	// 9: Dup
	// 10: IterHasNext
	// 11: JumpIfFalse done(17)
	// 12: IterNext
	// 13: LoadVar "sum"
	// 14: Add
	// 15: StoreVar "sum"
	// 16: Jump loop(8)
	// done:
	// 17: LoadVar "sum"
	// 18: Return
	chunk := bytecode.NewChunk()
	emit := func(in bytecode.Instruction) int { return chunk.Emit(in, bytecode.Position{}) }

	emit(bytecode.Idx(bytecode.LoadInt, 1))
	emit(bytecode.Idx(bytecode.LoadInt, 2))
	emit(bytecode.Idx(bytecode.LoadInt, 3))
	emit(bytecode.Idx(bytecode.ConstructArray, 3))
	emit(bytecode.Op0(bytecode.NewIter))
	emit(bytecode.Named(bytecode.DeclVar, "it"))
	emit(bytecode.Idx(bytecode.LoadInt, 0))
	emit(bytecode.Named(bytecode.DeclVar, "sum"))

	loopPC := emit(bytecode.Named(bytecode.LoadVar, "it"))
	emit(bytecode.Op0(bytecode.Dup))
	emit(bytecode.Op0(bytecode.IterHasNext))
	jumpIfFalsePC := emit(bytecode.Addr(bytecode.JumpIfFalse, 0))
	emit(bytecode.Op0(bytecode.IterNext))
	emit(bytecode.Named(bytecode.LoadVar, "sum"))
	emit(bytecode.Op0(bytecode.Add))
	emit(bytecode.Named(bytecode.StoreVar, "sum"))
	emit(bytecode.Addr(bytecode.Jump, loopPC))

	donePC := emit(bytecode.Named(bytecode.LoadVar, "sum"))
	emit(bytecode.Op0(bytecode.Return))
	chunk.Patch(jumpIfFalsePC, donePC)

	result, _, err := runProgram(chunk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != float64(6) {
		t.Errorf("wrong result. got=%v, want=6", result)
	}
}

// TestThrowDeliversRawPayload covers the identity guarantee in spec
// §4.4.2: Throw must hand the handler the exact Value that was thrown, not
// a synthesized wrapper, so a caught Object is RefEq to the one that was
// thrown and keeps its own fields instead of acquiring JLRuntimeError's.
func TestThrowDeliversRawPayload(t *testing.T) {
	// 0: NewObj
	// 1: Dup
	// 2: DeclVar "x"          ; stash a reference for the RefEq check
	// 3: Dup
	// 4: LoadConst "tag"
	// 5: LoadConst 42
	// 6: Store                ; x.tag = 42
	// 7: PushCatch handler
	// 8: Throw
	// 9: (unreachable filler)
	// handler:
	// 10: PopCatch
	// 11: DeclVar "caught"
	// 12: LoadVar "caught"
	// 13: LoadVar "x"
	// 14: RefEq
	// 15: Return
	chunk := bytecode.NewChunk()
	chunk.Constants = []interface{}{"tag", float64(42)}
	emit := func(in bytecode.Instruction) int { return chunk.Emit(in, bytecode.Position{}) }

	emit(bytecode.Op0(bytecode.NewObj))
	emit(bytecode.Op0(bytecode.Dup))
	emit(bytecode.Named(bytecode.DeclVar, "x"))
	emit(bytecode.Op0(bytecode.Dup))
	emit(bytecode.Idx(bytecode.LoadConst, 0))
	emit(bytecode.Idx(bytecode.LoadConst, 1))
	emit(bytecode.Op0(bytecode.Store))
	pushCatchPC := emit(bytecode.Addr(bytecode.PushCatch, 0))
	emit(bytecode.Op0(bytecode.Throw))
	emit(bytecode.Idx(bytecode.LoadInt, -1)) // unreachable

	handlerPC := emit(bytecode.Op0(bytecode.PopCatch))
	emit(bytecode.Named(bytecode.DeclVar, "caught"))
	emit(bytecode.Named(bytecode.LoadVar, "caught"))
	emit(bytecode.Named(bytecode.LoadVar, "x"))
	emit(bytecode.Op0(bytecode.RefEq))
	emit(bytecode.Op0(bytecode.Return))
	chunk.Patch(pushCatchPC, handlerPC)

	result, _, err := runProgram(chunk)
	if err != nil {
		t.Fatalf("unexpected propagation to host: %v", err)
	}
	if result != true {
		t.Fatalf("caught value is not RefEq to the thrown value: %v", result)
	}
}

// TestThrowUncaughtIsExplicit checks that an uncaught Throw is reported as
// an explicit ExecError so the host can distinguish it (spec §6's exit
// code -1) from an internal VM failure (exit code 1).
func TestThrowUncaughtIsExplicit(t *testing.T) {
	chunk := buildChunk([]interface{}{"boom"},
		bytecode.Idx(bytecode.LoadConst, 0),
		bytecode.Op0(bytecode.Throw),
		bytecode.Op0(bytecode.Return),
	)
	_, _, err := runProgram(chunk)
	if err == nil {
		t.Fatal("expected an uncaught-exception error")
	}
	execErr, ok := err.(*errors.ExecError)
	if !ok {
		t.Fatalf("expected *errors.ExecError, got %T", err)
	}
	if !execErr.Explicit {
		t.Errorf("expected Explicit to be true for an uncaught Throw")
	}
	if execErr.Payload != "boom" {
		t.Errorf("expected Payload to be the thrown value, got %v", execErr.Payload)
	}
}
