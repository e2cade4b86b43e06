package holder

// MoveHolder owns a fixed-size int32 buffer and supports both deep copy and
// ownership transfer. Move and MoveAssign run in constant time, never
// allocate element storage and never fail.
type MoveHolder struct {
	buf buffer
}

// NewMove allocates a holder of size elements.
func NewMove(size int) (*MoveHolder, error) {
	buf, err := newBuffer(size)
	if err != nil {
		return nil, err
	}
	return &MoveHolder{buf: buf}, nil
}

// Clone returns an independent holder with the same elements. h is not modified.
func (h *MoveHolder) Clone() *MoveHolder {
	return &MoveHolder{buf: h.buf.duplicate()}
}

// Assign replaces h's contents with a deep copy of other and returns h.
// Assigning a holder to itself is a no-op.
func (h *MoveHolder) Assign(other *MoveHolder) *MoveHolder {
	if h == other {
		return h
	}
	h.buf = other.buf.duplicate()
	return h
}

// Move returns a new holder that owns h's buffer. h is left empty (Len 0)
// and may be reused or released.
func (h *MoveHolder) Move() *MoveHolder {
	return &MoveHolder{buf: h.buf.take()}
}

// MoveAssign drops h's buffer, takes ownership of other's buffer and
// returns h. other is left empty. Moving a holder into itself is a no-op.
func (h *MoveHolder) MoveAssign(other *MoveHolder) *MoveHolder {
	if h == other {
		return h
	}
	h.buf.release()
	h.buf = other.buf.take()
	return h
}

// Release drops the buffer. It is safe to call more than once.
func (h *MoveHolder) Release() {
	h.buf.release()
}

// Len reports the number of elements.
func (h *MoveHolder) Len() int { return h.buf.size }

// At returns element i.
func (h *MoveHolder) At(i int) int32 { return h.buf.at(i) }

// Set stores v at index i.
func (h *MoveHolder) Set(i int, v int32) { h.buf.set(i, v) }

// Data exposes the underlying elements. The slice aliases the holder's buffer.
func (h *MoveHolder) Data() []int32 { return h.buf.data }

// Fill writes seed, seed+1, ... into the buffer.
func (h *MoveHolder) Fill(seed int32) { h.buf.fill(seed) }
