package holder

import "fmt"

// buffer is the storage shared by both holder kinds. A nil data slice with
// size 0 is the empty state.
type buffer struct {
	data []int32
	size int
}

func newBuffer(size int) (buffer, error) {
	if size < 0 {
		return buffer{}, fmt.Errorf("%w: %d", ErrNegativeSize, size)
	}
	if size == 0 {
		return buffer{}, nil
	}
	return buffer{data: make([]int32, size), size: size}, nil
}

// duplicate allocates a fresh buffer and copies every element in order.
func (b *buffer) duplicate() buffer {
	if b.size == 0 {
		return buffer{}
	}
	data := make([]int32, b.size)
	copy(data, b.data)
	return buffer{data: data, size: b.size}
}

// take moves ownership out of b and resets it to the empty state.
func (b *buffer) take() buffer {
	out := *b
	*b = buffer{}
	return out
}

func (b *buffer) release() {
	*b = buffer{}
}

func (b *buffer) at(i int) int32 {
	return b.data[i]
}

func (b *buffer) set(i int, v int32) {
	b.data[i] = v
}

// fill writes a deterministic pattern derived from seed.
func (b *buffer) fill(seed int32) {
	for i := range b.data {
		b.data[i] = seed + int32(i)
	}
}
