package vm

import (
	"github.com/jazz-lang/JazzScript/internal/errors"
	"github.com/jazz-lang/JazzScript/internal/value"
)

// execNewIter implements NewIter: pop an Array or Object and push a fresh
// Iterator snapshotting its contents (spec §4.5). An Iterator operand
// passes through unchanged; anything else is a TypeError.
func (f *Frame) execNewIter() error {
	target, err := f.pop()
	if err != nil {
		return err
	}
	switch t := target.(type) {
	case *value.Array:
		f.push(value.NewArrayIterator(t))
	case *value.Object:
		f.push(value.NewObjectIterator(t))
	case *value.Iterator:
		f.push(t)
	default:
		return f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "cannot iterate over %s", value.TypeName(target)))
	}
	return nil
}

// execIterHasNext implements IterHasNext: pop an Iterator, push whether it
// has another element. The compiler is expected to Dup the iterator
// reference before this opcode if it still needs it afterward.
func (f *Frame) execIterHasNext() error {
	v, err := f.pop()
	if err != nil {
		return err
	}
	it, ok := v.(*value.Iterator)
	if !ok {
		return f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "invalid iterator operand"))
	}
	f.push(it.HasNext())
	return nil
}

// execIterNext implements IterNext: pop an Iterator, push its next element
// (Undefined if exhausted).
func (f *Frame) execIterNext() error {
	v, err := f.pop()
	if err != nil {
		return err
	}
	it, ok := v.(*value.Iterator)
	if !ok {
		return f.raise(errors.New(errors.TypeError, f.Code.PositionAt(f.PC), "invalid iterator operand"))
	}
	f.push(it.Next())
	return nil
}
