// Package holder provides two value types that exclusively own a contiguous
// block of int32 elements.
//
// CopyHolder only knows how to duplicate its buffer: construction, deep copy
// (Clone), deep-copy assignment (Assign) and release. MoveHolder has the same
// surface plus ownership transfer (Move, MoveAssign), which hands the buffer
// to the receiver in constant time and leaves the donor empty but usable.
//
// Both types share the same assignment ordering: the new buffer is allocated
// and filled before the old one is dropped, so a failed allocation leaves the
// receiver untouched.
package holder
