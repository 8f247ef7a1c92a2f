package domain

// Payload is an immutable byte sequence. The zero value is an empty payload.
type Payload struct {
	b []byte
}

// NewPayload copies b so later changes by the caller are not observed.
func NewPayload(b []byte) Payload {
	return Payload{b: append([]byte(nil), b...)}
}

// Bytes returns a copy of the payload.
func (p Payload) Bytes() []byte {
	return append([]byte(nil), p.b...)
}

// Len returns the payload size in bytes.
func (p Payload) Len() int {
	return len(p.b)
}

// View returns the backing slice without copying. Callers must not modify it.
func (p Payload) View() []byte {
	return p.b
}
