package value

import "fmt"

// Declare implements spec §4.3's declare(O, k, v): insert k into O's own
// table, failing if it already exists there (DuplicateDeclaration).
// PushEnv/PopEnv themselves are plain Object construction/discard and need
// no dedicated function; see NewObjectWithProto.
func Declare(scope *Object, key Value, val Value) error {
	if scope.Has(key) {
		return fmt.Errorf("variable '%s' already declared", Display(key))
	}
	scope.Set(key, val)
	return nil
}

// Assign implements spec §4.3's assign(O, k, v): walk O then its prototype
// chain, overwriting the first hit; UndeclaredVariable if the chain is
// exhausted.
func Assign(scope *Object, key Value, val Value) error {
	for cur := scope; cur != nil; cur = cur.Proto {
		if cur.Has(key) {
			cur.Set(key, val)
			return nil
		}
	}
	return fmt.Errorf("variable '%s' not declared", Display(key))
}

// Lookup implements spec §4.3's lookup(O, k): walk the chain identically to
// Assign, returning UndeclaredVariable on a total miss.
func Lookup(scope *Object, key Value) (Value, error) {
	for cur := scope; cur != nil; cur = cur.Proto {
		if v, ok := cur.GetOwn(key); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("variable '%s' not declared", Display(key))
}

// DeclareOrOverwrite inserts key if absent, otherwise overwrites the
// existing slot. Spec §4.4.1 uses this rule (not plain Declare) to bind
// parameters, `_args`, and `this` on every Call, since a resumed generator
// re-binds the same names into its already-populated captured environment.
func DeclareOrOverwrite(scope *Object, key Value, val Value) {
	scope.Set(key, val)
}
