package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("udpbeat: invalid configuration")

	// ErrAlreadyRunning is returned when Start() is called on a running emitter.
	ErrAlreadyRunning = errors.New("udpbeat: already running")

	// ErrStopped is returned when Start() is called on a stopped emitter.
	// A stopped emitter cannot be restarted; construct a new one.
	ErrStopped = errors.New("udpbeat: emitter stopped")
)

// ConfigError is returned at construction time for an unusable destination,
// interval or socket option. It is fatal: the emitter is never created.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("udpbeat: invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) true.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// SendError describes the failure of a single tick's send. It is only ever
// reported; it never stops the emitter.
type SendError struct {
	Seq         uint64
	Destination Destination
	Err         error
}

func (e *SendError) Error() string {
	return "udpbeat: send #" + strconv.FormatUint(e.Seq, 10) + " to " + e.Destination.String() + ": " + e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}
