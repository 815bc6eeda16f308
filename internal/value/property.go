package value

import (
	"fmt"
	"strconv"
)

const protoKey = "__proto__"

// ToIndex coerces a property key to a non-negative array index. Spec §4.2
// requires K to "coerce to a non-negative integer index"; both a Number key
// (from ConstructArray-style numeric access) and a String key (from a
// compiler that always emits string keys) are accepted.
func ToIndex(k Value) (int, bool) {
	switch t := k.(type) {
	case float64:
		if t < 0 || t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Load implements spec §4.2's property-read contract.
func Load(target Value, key Value) (Value, error) {
	switch t := target.(type) {
	case *Object:
		if isProtoKey(key) {
			if t.Proto == nil {
				return Undefined, nil
			}
			return t.Proto, nil
		}
		return t.Get(key), nil

	case *Array:
		if s, ok := key.(string); ok && s == "length" {
			return float64(t.Length()), nil
		}
		idx, ok := ToIndex(key)
		if !ok {
			return nil, fmt.Errorf("invalid array index %v", Display(key))
		}
		return t.Index(idx)

	case *Function:
		if t.IsNative() {
			return Undefined, nil
		}
		if t.Env == nil {
			return Undefined, nil
		}
		return Load(t.Env, key)

	default:
		return Undefined, nil
	}
}

// Store implements spec §4.2's property-write contract.
func Store(target Value, key Value, val Value) error {
	switch t := target.(type) {
	case *Object:
		t.Set(key, val)
		return nil

	case *Array:
		idx, ok := ToIndex(key)
		if !ok {
			return fmt.Errorf("invalid array index %v", Display(key))
		}
		return t.SetIndex(idx, val)

	case *Function:
		if t.IsNative() || t.Env == nil {
			return nil
		}
		return Store(t.Env, key, val)

	default:
		return nil
	}
}

func isProtoKey(key Value) bool {
	s, ok := key.(string)
	return ok && s == protoKey
}
