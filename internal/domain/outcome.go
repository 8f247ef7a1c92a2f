package domain

import (
	"net"
	"time"
)

// Outcome is the result of the send issued on one tick.
type Outcome struct {
	// Seq is the tick sequence number, starting at 1.
	Seq uint64

	// Remote is the resolved address; nil if resolution failed.
	Remote net.Addr

	// Bytes is the number of bytes written.
	Bytes int

	// Duration covers resolution and the write.
	Duration time.Duration

	// Err is nil on success, otherwise a *SendError.
	Err error
}

// OK reports whether the send succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}
