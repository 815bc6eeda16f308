package value

// Iterator is a finite, non-restartable sequence of Values produced by
// snapshotting an Array or an Object's entries (spec §3, §4.5).
type Iterator struct {
	items []Value
	pos   int
}

// NewArrayIterator snapshots an Array's element references in order.
func NewArrayIterator(a *Array) *Iterator {
	items := make([]Value, len(a.Elements))
	copy(items, a.Elements)
	return &Iterator{items: items}
}

// NewObjectIterator snapshots an Object's entries as fresh single-level
// Objects, each with "key" and "value" slots, in insertion order (spec
// §4.5).
func NewObjectIterator(o *Object) *Iterator {
	entries := o.Entries()
	items := make([]Value, len(entries))
	for i, e := range entries {
		pair := NewObject()
		pair.Set("key", e.Key)
		pair.Set("value", e.Value)
		items[i] = pair
	}
	return &Iterator{items: items}
}

// HasNext reports remaining length.
func (it *Iterator) HasNext() bool { return it.pos < len(it.items) }

// Next returns the front element and advances. Calling Next past the end
// returns Undefined; callers are expected to guard with HasNext first, per
// spec §4.5 ("IterHasNext... the compiler is expected to duplicate the
// reference before each query").
func (it *Iterator) Next() Value {
	if !it.HasNext() {
		return Undefined
	}
	v := it.items[it.pos]
	it.pos++
	return v
}
