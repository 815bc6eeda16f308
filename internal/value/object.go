package value

// Object is an insertion-ordered mapping from Value keys to Value slots,
// with an optional prototype link. It is shared and mutable (spec §3), and
// serves both as a user-visible object and — unadorned — as a lexical
// scope (spec §4.3): an Environment is simply an Object whose proto is its
// enclosing scope.
type Object struct {
	keys  []Value
	slots map[interface{}]Value
	index map[interface{}]int // key -> position in keys, for O(1) lookup + stable order
	Proto *Object
}

// NewObject returns an empty object with no prototype.
func NewObject() *Object {
	return &Object{
		slots: make(map[interface{}]Value),
		index: make(map[interface{}]int),
	}
}

// NewObjectWithProto returns an empty object whose prototype is proto; used
// by PushEnv to extend the scope chain and by InitEnv to give a closure its
// captured environment.
func NewObjectWithProto(proto *Object) *Object {
	o := NewObject()
	o.Proto = proto
	return o
}

// normKey canonicalizes a Value so it can be used as a Go map key even
// though Value keys may themselves be composite (Array/Object keys compare
// structurally per spec §3, but in practice only String and Number keys are
// ever constructed by a compliant compiler). Non-comparable keys fall back
// to their Display string so they at least behave consistently within one
// Object's lifetime.
func normKey(k Value) interface{} {
	switch k.(type) {
	case string, float64, bool, NilType, UndefinedType:
		return k
	default:
		return Display(k)
	}
}

// Has reports whether key exists in this Object's own table (not walking
// Proto), used by declare's duplicate check.
func (o *Object) Has(key Value) bool {
	_, ok := o.index[normKey(key)]
	return ok
}

// GetOwn returns the value at key in this Object's own table only.
func (o *Object) GetOwn(key Value) (Value, bool) {
	v, ok := o.slots[normKey(key)]
	return v, ok
}

// Set inserts or overwrites key in this Object's own table. A fresh key is
// appended to preserve insertion order (spec §3: "insertion order is
// observable via iteration").
func (o *Object) Set(key, val Value) {
	nk := normKey(key)
	if i, ok := o.index[nk]; ok {
		o.slots[nk] = val
		o.keys[i] = key
		return
	}
	o.index[nk] = len(o.keys)
	o.keys = append(o.keys, key)
	o.slots[nk] = val
}

// Get walks the prototype chain starting at o, returning Undefined on a
// total miss (spec §4.2's Load contract for an Object target).
func (o *Object) Get(key Value) Value {
	for cur := o; cur != nil; cur = cur.Proto {
		if v, ok := cur.GetOwn(key); ok {
			return v
		}
	}
	return Undefined
}

// Entries returns the Object's own (key, value) pairs in insertion order,
// used by NewIter.
func (o *Object) Entries() []Entry {
	out := make([]Entry, len(o.keys))
	for i, k := range o.keys {
		out[i] = Entry{Key: k, Value: o.slots[normKey(k)]}
	}
	return out
}

// Entry is one (key, value) pair of an Object, snapshotted by NewIter.
type Entry struct {
	Key   Value
	Value Value
}

// Display renders an object for string coercion (spec §4.1's "+" with a
// String operand); this is not spec-mandated formatting, only a readable
// default.
func (o *Object) Display() string {
	return "[object]"
}
