// Package log provides the logging abstraction used by udpbeat components.
//
// The emitter never talks to a logging library directly. It logs through the
// [Logger] interface, which has a zerolog implementation and a no-op
// implementation for tests and silent embedding.
//
// # Usage
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	logger = logger.With(log.String("emitter_id", id))
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
package log
