// Package harness drives holder types through a fixed script of
// construction, copy and transfer operations and times every step.
package harness

// Value is the surface every measured type provides: deep copy, deep-copy
// assignment and release.
type Value[T any] interface {
	Len() int
	Clone() T
	Assign(other T) T
	Release()
}

// Transferable is implemented by types that can hand their storage over in
// constant time. Types without it get the copy operations instead.
type Transferable[T any] interface {
	Move() T
	MoveAssign(other T) T
}

// Allocator constructs a value with size elements.
type Allocator[T any] func(size int) (T, error)

// construct binds a disposable value into a new one, transferring when the
// type allows it. The bool reports whether a transfer happened.
func construct[T Value[T]](tmp T) (T, bool) {
	if m, ok := any(tmp).(Transferable[T]); ok {
		return m.Move(), true
	}
	return tmp.Clone(), false
}

// assign stores a disposable value into dst, transferring when the type allows it.
func assign[T Value[T]](dst, tmp T) (T, bool) {
	if m, ok := any(dst).(Transferable[T]); ok {
		return m.MoveAssign(tmp), true
	}
	return dst.Assign(tmp), false
}
