package value

import (
	"hash/fnv"
	"math"
)

// Equal implements spec §3's structural equality: exact for Number, String,
// Bool, Nil, Undefined; structural (recursive) for Array and Object
// comparing their ordered entries and prototype chains; false for every
// other pairing (including two Functions or two Iterators, which §3 does
// not place in the structural-equality set).
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case NilType:
		_, ok := b.(NilType)
		return ok
	case UndefinedType:
		_, ok := b.(UndefinedType)
		return ok
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		return ok && arrayEqual(x, y)
	case *Object:
		y, ok := b.(*Object)
		return ok && objectEqual(x, y)
	default:
		return false
	}
}

func arrayEqual(a, b *Array) bool {
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !Equal(a.Elements[i], b.Elements[i]) {
			return false
		}
	}
	return true
}

func objectEqual(a, b *Object) bool {
	ae, be := a.Entries(), b.Entries()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if !Equal(ae[i].Key, be[i].Key) || !Equal(ae[i].Value, be[i].Value) {
			return false
		}
	}
	return protoEqual(a.Proto, b.Proto)
}

func protoEqual(a, b *Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return objectEqual(a, b)
}

// RefEq tests identity of the reference cell for the four shared-mutable
// variants, rather than structural equality (spec §4.4.2). Value types with
// no reference cell (Number, String, Bool, Nil, Undefined) have nothing to
// alias, so RefEq degrades to Equal for them.
func RefEq(a, b Value) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		return ok && x == y
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	case *Iterator:
		y, ok := b.(*Iterator)
		return ok && x == y
	default:
		return Equal(a, b)
	}
}

// Less implements spec §3's ordering: defined only within a type; mixed
// types are unspecified (this implementation, and the comparison operators
// built on it, treat that case as "not less").
func Less(a, b Value) (bool, bool) {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x < y, ok
	case string:
		y, ok := b.(string)
		return ok && x < y, ok
	case bool:
		y, ok := b.(bool)
		return ok && !x && y, ok
	case *Array:
		y, ok := b.(*Array)
		return ok && arrayLess(x, y), ok
	case *Object:
		y, ok := b.(*Object)
		return ok && objectLess(x, y), ok
	default:
		return false, false
	}
}

func arrayLess(a, b *Array) bool {
	n := len(a.Elements)
	if len(b.Elements) < n {
		n = len(b.Elements)
	}
	for i := 0; i < n; i++ {
		if lt, ok := Less(a.Elements[i], b.Elements[i]); ok && lt {
			return true
		}
		if lt, ok := Less(b.Elements[i], a.Elements[i]); ok && lt {
			return false
		}
	}
	return len(a.Elements) < len(b.Elements)
}

func objectLess(a, b *Object) bool {
	ae, be := a.Entries(), b.Entries()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		if lt, ok := Less(ae[i].Value, be[i].Value); ok && lt {
			return true
		}
		if lt, ok := Less(be[i].Value, ae[i].Value); ok && lt {
			return false
		}
	}
	return len(ae) < len(be)
}

// Hash implements spec §3's hashing rules, used by a host embedding that
// wants to key its own maps on JazzScript values. hash/fnv is used for
// String per the style of the Monkey-book example in the examples pack
// (object.String.HashKey); Number hashes its IEEE-754 bit pattern.
func Hash(v Value) uint64 {
	switch t := v.(type) {
	case NilType, UndefinedType:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case float64:
		return math.Float64bits(t)
	case string:
		h := fnv.New64a()
		_, _ = h.Write([]byte(t))
		return h.Sum64()
	case *Array:
		h := fnv.New64a()
		for _, e := range t.Elements {
			writeUint64(h, Hash(e))
		}
		writeUint64(h, uint64(len(t.Elements)))
		return h.Sum64()
	case *Object:
		h := fnv.New64a()
		for _, e := range t.Entries() {
			writeUint64(h, Hash(e.Key))
			writeUint64(h, Hash(e.Value))
		}
		writeUint64(h, uint64(len(t.keys)))
		if t.Proto != nil {
			writeUint64(h, Hash(t.Proto))
		}
		return h.Sum64()
	default:
		return 0
	}
}

func writeUint64(h interface{ Write([]byte) (int, error) }, n uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}
