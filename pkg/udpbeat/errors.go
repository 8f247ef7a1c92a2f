package udpbeat

import "github.com/bft-labs/udpbeat/internal/domain"

// Destination is the host and port datagrams are sent to.
type Destination = domain.Destination

// ConfigError is returned by New and NewFromConfig for invalid input.
// errors.Is(err, ErrInvalidConfig) holds for every ConfigError.
type ConfigError = domain.ConfigError

// SendError describes one failed send. It is only delivered through
// SendFailureEvent and the log, never returned.
type SendError = domain.SendError

var (
	ErrInvalidConfig  = domain.ErrInvalidConfig
	ErrAlreadyRunning = domain.ErrAlreadyRunning
	ErrStopped        = domain.ErrStopped
)
