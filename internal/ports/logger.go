package ports

import "github.com/bft-labs/udpbeat/pkg/log"

// Logger is the structured logger used throughout the application layer.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors, re-exported so internal packages import one place.
var (
	String   = log.String
	Int      = log.Int
	Uint64   = log.Uint64
	Duration = log.Duration
	Stringer = log.Stringer
	Err      = log.Err
)
