// ops.go implements spec §4.1's binary/unary operator algebra. Every
// function here takes operands already popped off the VM's stack in the
// order spec §4.1 prescribes (left operand first, right operand second) —
// internal/vm is responsible for popping in the correct order; these
// functions just compute.
package value

import "math"

// Add implements `+`: Number+Number is arithmetic; Array+Array
// concatenates; a String on either side coerces the other operand via
// Display and concatenates.
func Add(a, b Value) Value {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			return x + y
		}
	}
	if x, ok := a.(*Array); ok {
		if y, ok := b.(*Array); ok {
			return x.Concat(y)
		}
	}
	if _, ok := a.(string); ok {
		return Display(a) + Display(b)
	}
	if _, ok := b.(string); ok {
		return Display(a) + Display(b)
	}
	return Undefined
}

// numOp applies f to two Number operands, or returns Undefined for any
// other pairing (spec: "-, *, /, %: Number-on-Number only; otherwise
// Undefined").
func numOp(a, b Value, f func(x, y float64) float64) Value {
	x, ok1 := a.(float64)
	y, ok2 := b.(float64)
	if !ok1 || !ok2 {
		return Undefined
	}
	return f(x, y)
}

func Sub(a, b Value) Value { return numOp(a, b, func(x, y float64) float64 { return x - y }) }
func Mul(a, b Value) Value { return numOp(a, b, func(x, y float64) float64 { return x * y }) }

// Div implements `/`. Division by zero produces IEEE-754 infinity or NaN,
// never an exception (spec §4.1).
func Div(a, b Value) Value { return numOp(a, b, func(x, y float64) float64 { return x / y }) }

// Rem implements `%` via Go's float64 Mod, matching the Number-only,
// no-exception contract Div has.
func Rem(a, b Value) Value { return numOp(a, b, math.Mod) }

func floorInt64(f float64) int64 { return int64(math.Floor(f)) }

// bitOp floors both operands to signed 64-bit, applies f in that width,
// and widens the result back to Number (spec §4.1).
func bitOp(a, b Value, f func(x, y int64) int64) Value {
	x, ok1 := a.(float64)
	y, ok2 := b.(float64)
	if !ok1 || !ok2 {
		return Undefined
	}
	return float64(f(floorInt64(x), floorInt64(y)))
}

func Shl(a, b Value) Value    { return bitOp(a, b, func(x, y int64) int64 { return x << uint(y&63) }) }
func Shr(a, b Value) Value    { return bitOp(a, b, func(x, y int64) int64 { return x >> uint(y&63) }) }
func BitAnd(a, b Value) Value { return bitOp(a, b, func(x, y int64) int64 { return x & y }) }
func BitOr(a, b Value) Value  { return bitOp(a, b, func(x, y int64) int64 { return x | y }) }
func BitXor(a, b Value) Value { return bitOp(a, b, func(x, y int64) int64 { return x ^ y }) }

// And/Or implement `&&`/`||`: truthiness-coerced, Bool result.
func And(a, b Value) Value { return Truthy(a) && Truthy(b) }
func Or(a, b Value) Value  { return Truthy(a) || Truthy(b) }

// Gt/Ge/Lt/Le implement the ordered comparisons: false whenever the
// operands are not the same ordered type (spec §4.1).
func Lt(a, b Value) Value { lt, ok := Less(a, b); return ok && lt }
func Gt(a, b Value) Value { lt, ok := Less(b, a); return ok && lt }
func Le(a, b Value) Value { gt, ok := Less(b, a); return ok && !gt }
func Ge(a, b Value) Value { lt, ok := Less(a, b); return ok && !lt }

// Eq/Ne implement structural equality/inequality.
func Eq(a, b Value) Value { return Equal(a, b) }
func Ne(a, b Value) Value { return !Equal(a, b) }

// Not implements unary `!`.
func Not(a Value) Value {
	switch t := a.(type) {
	case bool:
		return !t
	case float64:
		return float64(^floorInt64(t))
	case NilType, UndefinedType:
		return true
	default:
		return false
	}
}

// Neg implements unary `-`.
func Neg(a Value) Value {
	switch t := a.(type) {
	case float64:
		return -t
	case NilType:
		return float64(0)
	default:
		return math.NaN()
	}
}
