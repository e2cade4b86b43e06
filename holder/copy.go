package holder

// CopyHolder owns a fixed-size int32 buffer and can only be deep-copied.
// There is no transfer operation: any caller that wants to hand a CopyHolder
// over has to Clone or Assign it.
type CopyHolder struct {
	buf buffer
}

// NewCopy allocates a holder of size elements.
func NewCopy(size int) (*CopyHolder, error) {
	buf, err := newBuffer(size)
	if err != nil {
		return nil, err
	}
	return &CopyHolder{buf: buf}, nil
}

// Clone returns an independent holder with the same elements. h is not modified.
func (h *CopyHolder) Clone() *CopyHolder {
	return &CopyHolder{buf: h.buf.duplicate()}
}

// Assign replaces h's contents with a deep copy of other and returns h.
// Assigning a holder to itself is a no-op.
func (h *CopyHolder) Assign(other *CopyHolder) *CopyHolder {
	if h == other {
		return h
	}
	h.buf = other.buf.duplicate()
	return h
}

// Release drops the buffer. It is safe to call more than once.
func (h *CopyHolder) Release() {
	h.buf.release()
}

// Len reports the number of elements.
func (h *CopyHolder) Len() int { return h.buf.size }

// At returns element i.
func (h *CopyHolder) At(i int) int32 { return h.buf.at(i) }

// Set stores v at index i.
func (h *CopyHolder) Set(i int, v int32) { h.buf.set(i, v) }

// Data exposes the underlying elements. The slice aliases the holder's buffer.
func (h *CopyHolder) Data() []int32 { return h.buf.data }

// Fill writes seed, seed+1, ... into the buffer.
func (h *CopyHolder) Fill(seed int32) { h.buf.fill(seed) }
