// Package value implements spec §3's Value universe: the tagged sum of
// Nil, Undefined, Bool, Number, String, Object, Array, Function, and
// Iterator, plus the operator algebra, property contracts, and structural
// equality/hashing that make it a coherent value system. Grounded on the
// teacher's `type Value interface{}` (internal/vm/value.go) and its
// pointer-shared Object/Array/Function representation.
package value

import (
	"fmt"
	"math"
)

// Value is the universe. Exactly nine Go types ever populate it:
// NilType, UndefinedType, bool, float64, string, *Object, *Array,
// *Function, *Iterator.
type Value interface{}

// NilType is the dynamic type of the Nil singleton. Spec §3 requires Nil
// and Undefined to be distinguishable, which rules out using Go's own nil
// interface value for either of them.
type NilType struct{}

func (NilType) String() string { return "nil" }

// UndefinedType is the dynamic type of the Undefined singleton.
type UndefinedType struct{}

func (UndefinedType) String() string { return "undefined" }

var (
	// Nil is the Value pushed by LoadNil.
	Nil = NilType{}
	// Undefined is the Value pushed by LoadUndef, and returned by every
	// property miss (§4.2).
	Undefined = UndefinedType{}
)

// TypeName reports the dynamic type name of a Value, used by the host for
// diagnostics and by TypeOf-style native functions.
func TypeName(v Value) string {
	switch v.(type) {
	case NilType:
		return "nil"
	case UndefinedType:
		return "undefined"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case *Object:
		return "object"
	case *Array:
		return "array"
	case *Function:
		return "function"
	case *Iterator:
		return "iterator"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Truthy implements spec §3's truthiness coercion: Bool as itself; Number
// is false iff its floor equals zero; Nil and Undefined are false; every
// other value (Object, Array, Function, Iterator) is true.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return math.Floor(t) != 0
	case NilType, UndefinedType:
		return false
	default:
		return true
	}
}

// Display renders a Value's string coercion, used by `+` when either
// operand is a String (spec §4.1) and by the host's print path.
func Display(v Value) string {
	switch t := v.(type) {
	case NilType:
		return "nil"
	case UndefinedType:
		return "undefined"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	case string:
		return t
	case *Object:
		return t.Display()
	case *Array:
		return t.Display()
	case *Function:
		return t.Display()
	case *Iterator:
		return "<iterator>"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// formatNumber mirrors the teacher's memory.ToString float rendering: an
// exact integer value prints without a decimal point.
func formatNumber(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
