package harness

import (
	"time"

	"movebench/internal/chrono"
)

// Temporary returns a freshly built value meant to be consumed by the caller
// right away. Two candidates of size elements are built and one is returned
// depending on the parity of the current day of month, so the result cannot
// be constructed directly in the caller's storage and has to be copied or
// transferred out. The loser is released.
//
// The timing scope for the consuming step is opened on sw after both
// candidates exist, so the caller's Stop measures only the hand-over.
//
//go:noinline
func Temporary[T Value[T]](size int, alloc Allocator[T], clock func() time.Time, sw *chrono.Stack) (T, error) {
	var zero T
	odd, err := alloc(size)
	if err != nil {
		return zero, err
	}
	even, err := alloc(size)
	if err != nil {
		odd.Release()
		return zero, err
	}

	sw.Start()

	if clock().Day()%2 == 1 {
		even.Release()
		return odd, nil
	}
	odd.Release()
	return even, nil
}
