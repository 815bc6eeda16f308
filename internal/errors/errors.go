// Package errors defines the execution core's catchable failure kinds
// (spec §7) and the Go error type they are carried in before the VM turns
// them into a value.Object exception payload. Adapted from the teacher's
// SentraError (source location + call stack), with cause-wrapping delegated
// to github.com/pkg/errors rather than a hand-rolled chain.
package errors

import (
	"fmt"
	"strings"

	"github.com/jazz-lang/JazzScript/internal/bytecode"

	pkgerrors "github.com/pkg/errors"
)

// Kind is one of the six catchable failure kinds from spec §7.
type Kind string

const (
	StackUnderflow       Kind = "StackUnderflow"
	UndeclaredVariable   Kind = "UndeclaredVariable"
	DuplicateDeclaration Kind = "DuplicateDeclaration"
	TypeError            Kind = "TypeError"
	GeneratorStateMissing Kind = "GeneratorStateMissing"
	RuntimeException     Kind = "RuntimeException"
)

// StackFrame is one entry of a reported call stack, rendered the way the
// teacher's SentraError.Error does.
type StackFrame struct {
	Function string
	Position bytecode.Position
}

// ExecError is the internal representation of a runtime failure. It is
// always convertible to the catchable exception Object shape from spec
// §4.4.2 (see vm.exceptionValue); ExecError itself is only ever seen
// by Go code (the host, tests, or a native function's return value).
type ExecError struct {
	Kind      Kind
	Message   string
	Position  bytecode.Position
	CallStack []StackFrame
	cause     error

	// Explicit marks an uncaught error that reached the host because a
	// script-level Throw had no handler, as opposed to an internal VM
	// failure (type error, stack underflow, ...). The host's exit-code
	// contract (spec §6) tells these two apart.
	Explicit bool
	// Payload is the raw Value a script passed to Throw, carried through
	// so the host can report it even though it never unwinds through the
	// value package's types here.
	Payload interface{}
}

// New builds an ExecError of the given kind whose Message is the formatted
// text as is; no per-kind prefix is added.
func New(kind Kind, pos bytecode.Position, format string, args ...interface{}) *ExecError {
	return &ExecError{Kind: kind, Message: fmt.Sprintf(format, args...), Position: pos}
}

// NewExplicitThrow builds the ExecError reported to the host when a
// script's Throw reaches the top level uncaught, tagging it distinctly
// from internal VM failures so the CLI can honor spec §6's -1 exit code.
func NewExplicitThrow(payload interface{}, pos bytecode.Position, message string) *ExecError {
	return &ExecError{Kind: RuntimeException, Message: message, Position: pos, Explicit: true, Payload: payload}
}

// Wrap attaches a cause (e.g. a native function's returned error) to a
// RuntimeException, preserving it via pkg/errors.WithStack so %+v on the
// unwrapped cause shows the stack recorded where Wrap was called.
func Wrap(cause error, pos bytecode.Position) *ExecError {
	return &ExecError{
		Kind:     RuntimeException,
		Message:  cause.Error(),
		Position: pos,
		cause:    pkgerrors.WithStack(cause),
	}
}

func (e *ExecError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	if e.Position.File != "" {
		fmt.Fprintf(&sb, "\n  at %s", e.Position)
	}
	for _, f := range e.CallStack {
		if f.Function != "" {
			fmt.Fprintf(&sb, "\n  at %s (%s)", f.Function, f.Position)
		} else {
			fmt.Fprintf(&sb, "\n  at %s", f.Position)
		}
	}
	return sb.String()
}

func (e *ExecError) Unwrap() error { return e.cause }

// AddStackFrame records one call frame, innermost first, matching the
// teacher's AddStackFrame accumulation style.
func (e *ExecError) AddStackFrame(function string, pos bytecode.Position) *ExecError {
	e.CallStack = append(e.CallStack, StackFrame{Function: function, Position: pos})
	return e
}
